package storage

import (
	"context"

	"github.com/warp/portal/model"
)

// WithQuran returns a Storage that answers every QuranStore call from quran
// and everything else from base. It is how the proxy backend is combined
// with a writable store for the remaining families.
func WithQuran(base Storage, quran QuranStore) Storage {
	return &quranOverlay{Storage: base, quran: quran}
}

type quranOverlay struct {
	Storage
	quran QuranStore
}

func (o *quranOverlay) ListSurahs(ctx context.Context) ([]model.Surah, error) {
	return o.quran.ListSurahs(ctx)
}

func (o *quranOverlay) GetSurah(ctx context.Context, id int64) (*model.Surah, error) {
	return o.quran.GetSurah(ctx, id)
}

func (o *quranOverlay) CreateSurah(ctx context.Context, s model.Surah) (model.Surah, error) {
	return o.quran.CreateSurah(ctx, s)
}

func (o *quranOverlay) ListVersesBySurah(ctx context.Context, surahID int64) ([]model.Verse, error) {
	return o.quran.ListVersesBySurah(ctx, surahID)
}

func (o *quranOverlay) GetVerse(ctx context.Context, id int64) (*model.Verse, error) {
	return o.quran.GetVerse(ctx, id)
}

func (o *quranOverlay) CreateVerse(ctx context.Context, v model.Verse) (model.Verse, error) {
	return o.quran.CreateVerse(ctx, v)
}

package proxy

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/warp/portal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

type chaptersResponse struct {
	Chapters []chapter `json:"chapters"`
}

type chapterResponse struct {
	Chapter chapter `json:"chapter"`
}

type chapter struct {
	ID              int64  `json:"id"`
	RevelationPlace string `json:"revelation_place"`
	NameSimple      string `json:"name_simple"`
	NameArabic      string `json:"name_arabic"`
	VersesCount     int    `json:"verses_count"`
	TranslatedName  struct {
		Name string `json:"name"`
	} `json:"translated_name"`
}

type versesResponse struct {
	Verses     []verse `json:"verses"`
	Pagination struct {
		NextPage *int `json:"next_page"`
	} `json:"pagination"`
}

type verse struct {
	ID           int64  `json:"id"`
	VerseNumber  int    `json:"verse_number"`
	TextUthmani  string `json:"text_uthmani"`
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
	Audio *struct {
		URL string `json:"url"`
	} `json:"audio"`
}

// =============================================================================
// RESHAPING
// =============================================================================

func (c chapter) surah() model.Surah {
	return model.Surah{
		ID:                     c.ID,
		Number:                 int(c.ID),
		Name:                   c.NameArabic,
		EnglishName:            c.NameSimple,
		EnglishNameTranslation: c.TranslatedName.Name,
		RevelationType:         revelationType(c.RevelationPlace),
		VersesCount:            c.VersesCount,
	}
}

func revelationType(place string) model.RevelationType {
	switch strings.ToLower(place) {
	case "makkah", "mecca", "meccan":
		return model.RevelationMeccan
	case "madinah", "medina", "medinan":
		return model.RevelationMedinan
	}
	return ""
}

func (q *Quran) verse(surahID int64, v verse) model.Verse {
	parts := make([]string, 0, len(v.Translations))
	for _, t := range v.Translations {
		if text := plainText(t.Text); text != "" {
			parts = append(parts, text)
		}
	}

	out := model.Verse{
		ID:          v.ID,
		SurahID:     surahID,
		Number:      v.VerseNumber,
		Text:        v.TextUthmani,
		Translation: strings.Join(parts, " "),
	}
	if v.Audio != nil && v.Audio.URL != "" {
		out.AudioURL = q.audioURL(v.Audio.URL)
	}
	return out
}

// audioURL resolves a relative recitation path against the audio base.
// Absolute and protocol-relative upstream URLs are kept as they resolve.
func (q *Quran) audioURL(raw string) *string {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	s := q.audio.ResolveReference(ref).String()
	return &s
}

// plainText drops markup from a translation. Footnote markers (<sup>) are
// removed with their content; other tags keep their text.
func plainText(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var (
		b     strings.Builder
		depth int
		z     = html.NewTokenizer(strings.NewReader(fragment))
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if tagAtom(z) == atom.Sup {
				depth++
			}
		case html.EndTagToken:
			if tagAtom(z) == atom.Sup && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func tagAtom(z *html.Tokenizer) atom.Atom {
	name, _ := z.TagName()
	return atom.Lookup(name)
}

func sortSurahs(s []model.Surah) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Number != s[j].Number {
			return s[i].Number < s[j].Number
		}
		return s[i].ID < s[j].ID
	})
}

func sortVerses(v []model.Verse) {
	sort.SliceStable(v, func(i, j int) bool {
		if v[i].Number != v[j].Number {
			return v[i].Number < v[j].Number
		}
		return v[i].ID < v[j].ID
	})
}

package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// FAKE UPSTREAM
// =============================================================================

const chaptersJSON = `{"chapters":[
	{"id":2,"revelation_place":"madinah","name_simple":"Al-Baqarah","name_arabic":"البقرة","verses_count":286,"translated_name":{"name":"The Cow"}},
	{"id":1,"revelation_place":"makkah","name_simple":"Al-Fatihah","name_arabic":"الفاتحة","verses_count":7,"translated_name":{"name":"The Opener"}}
]}`

const chapterOneJSON = `{"chapter":{"id":1,"revelation_place":"makkah","name_simple":"Al-Fatihah","name_arabic":"الفاتحة","verses_count":7,"translated_name":{"name":"The Opener"}}}`

const versesPageOne = `{"verses":[
	{"id":1,"verse_number":1,"text_uthmani":"بِسْمِ ٱللَّهِ","translations":[{"text":"In the Name of Allah<sup foot_note=\"1\">1</sup>, the Most Merciful"}],"audio":{"url":"Alafasy/mp3/001001.mp3"}}
],"pagination":{"next_page":2}}`

const versesPageTwo = `{"verses":[
	{"id":2,"verse_number":2,"text_uthmani":"ٱلْحَمْدُ لِلَّهِ","translations":[{"text":"All praise is for Allah"}],"audio":{"url":"https://cdn.example.com/002.mp3"}}
],"pagination":{"next_page":null}}`

type upstream struct {
	*httptest.Server
	calls atomic.Int32
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func quranAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/chapters":
		_, _ = w.Write([]byte(chaptersJSON))
	case r.URL.Path == "/chapters/1":
		_, _ = w.Write([]byte(chapterOneJSON))
	case r.URL.Path == "/verses/by_chapter/1" && r.URL.Query().Get("page") == "1":
		_, _ = w.Write([]byte(versesPageOne))
	case r.URL.Path == "/verses/by_chapter/1" && r.URL.Query().Get("page") == "2":
		_, _ = w.Write([]byte(versesPageTwo))
	default:
		http.NotFound(w, r)
	}
}

func newProxy(t *testing.T, u *upstream) *Quran {
	t.Helper()
	q, err := New(Config{BaseURL: u.URL, AudioBaseURL: "https://audio.example.com/"})
	require.NoError(t, err)
	return q
}

// =============================================================================
// READS
// =============================================================================

func TestListSurahs_ReshapesAndOrders(t *testing.T) {
	// GIVEN: an upstream returning chapters out of order
	q := newProxy(t, newUpstream(t, quranAPI))

	// WHEN: listing surahs
	surahs, err := q.ListSurahs(context.Background())

	// THEN: they are ordered by number and mapped onto the model
	require.NoError(t, err)
	require.Len(t, surahs, 2)
	assert.Equal(t, model.Surah{
		ID:                     1,
		Number:                 1,
		Name:                   "الفاتحة",
		EnglishName:            "Al-Fatihah",
		EnglishNameTranslation: "The Opener",
		RevelationType:         model.RevelationMeccan,
		VersesCount:            7,
	}, surahs[0])
	assert.Equal(t, model.RevelationMedinan, surahs[1].RevelationType)
}

func TestGetSurah(t *testing.T) {
	u := newUpstream(t, quranAPI)
	q := newProxy(t, u)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, err := q.GetSurah(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "Al-Fatihah", s.EnglishName)
	})

	t.Run("upstream 404 is absent", func(t *testing.T) {
		s, err := q.GetSurah(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("out of range never calls upstream", func(t *testing.T) {
		before := u.calls.Load()

		for _, id := range []int64{0, -3, 115} {
			s, err := q.GetSurah(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, s)
		}
		assert.Equal(t, before, u.calls.Load())
	})
}

func TestListVersesBySurah_FollowsPagination(t *testing.T) {
	// GIVEN: a chapter split across two pages
	u := newUpstream(t, quranAPI)
	q := newProxy(t, u)

	// WHEN: listing its verses
	verses, err := q.ListVersesBySurah(context.Background(), 1)

	// THEN: both pages are merged, footnotes stripped, audio resolved
	require.NoError(t, err)
	require.Len(t, verses, 2)
	assert.Equal(t, int32(2), u.calls.Load())

	first := verses[0]
	assert.Equal(t, int64(1), first.SurahID)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "In the Name of Allah, the Most Merciful", first.Translation)
	require.NotNil(t, first.AudioURL)
	assert.Equal(t, "https://audio.example.com/Alafasy/mp3/001001.mp3", *first.AudioURL)

	require.NotNil(t, verses[1].AudioURL)
	assert.Equal(t, "https://cdn.example.com/002.mp3", *verses[1].AudioURL)
}

func TestListVersesBySurah_SendsConfiguredResources(t *testing.T) {
	var query atomic.Value
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.Query())
		_, _ = w.Write([]byte(`{"verses":[{"id":8,"verse_number":1,"text_uthmani":"الٓمٓ"}],"pagination":{"next_page":null}}`))
	})
	q, err := New(Config{BaseURL: u.URL + "/", TranslationID: 131, ReciterID: 3})
	require.NoError(t, err)

	verses, err := q.ListVersesBySurah(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, int64(2), verses[0].SurahID)
	params := query.Load().(url.Values)
	assert.Equal(t, "131", params.Get("translations"))
	assert.Equal(t, "3", params.Get("audio"))
	assert.Equal(t, "1", params.Get("page"))
}

func TestListVersesBySurah_UnknownSurahIsEmpty(t *testing.T) {
	u := newUpstream(t, quranAPI)
	q := newProxy(t, u)

	verses, err := q.ListVersesBySurah(context.Background(), 500)

	require.NoError(t, err)
	assert.NotNil(t, verses)
	assert.Empty(t, verses)
	assert.Zero(t, u.calls.Load())
}

func TestListVersesBySurah_EndlessPaginationFails(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"verses":[],"pagination":{"next_page":1}}`))
	})
	q := newProxy(t, u)

	_, err := q.ListVersesBySurah(context.Background(), 1)

	assert.ErrorIs(t, err, storage.ErrUpstreamUnavailable)
	assert.Equal(t, int32(maxPages), u.calls.Load())
}

// =============================================================================
// FAILURES
// =============================================================================

func TestUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"chapters": [`))
			},
		},
		{
			name: "well-formed JSON, wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
		{
			name: "payload for another chapter",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"chapters":[{"id":0}],"chapter":{"id":2},"verses":[{"id":5}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newProxy(t, newUpstream(t, tt.handler))
			ctx := context.Background()

			_, err := q.ListSurahs(ctx)
			assert.ErrorIs(t, err, storage.ErrUpstreamUnavailable)

			_, err = q.GetSurah(ctx, 1)
			assert.ErrorIs(t, err, storage.ErrUpstreamUnavailable)

			_, err = q.ListVersesBySurah(ctx, 1)
			assert.ErrorIs(t, err, storage.ErrUpstreamUnavailable)
		})
	}
}

func TestListCalls_NotFoundIsUpstreamFailure(t *testing.T) {
	// GIVEN: an upstream that answers 404 to everything
	q := newProxy(t, newUpstream(t, http.NotFound))
	ctx := context.Background()

	// WHEN/THEN: list calls for valid resources fail with the status
	surahs, err := q.ListSurahs(ctx)
	assert.Nil(t, surahs)
	var upErr *storage.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.StatusCode)

	verses, err := q.ListVersesBySurah(ctx, 1)
	assert.Nil(t, verses)
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "list verses", upErr.Op)
	assert.Equal(t, http.StatusNotFound, upErr.StatusCode)

	// AND: a by-id read still treats 404 as absent
	s, err := q.GetSurah(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestListVersesBySurah_MissingLaterPageFails(t *testing.T) {
	// GIVEN: page 1 promises a page 2 that the upstream cannot serve
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(versesPageOne))
			return
		}
		http.NotFound(w, r)
	})
	q := newProxy(t, u)

	// WHEN: listing the chapter
	verses, err := q.ListVersesBySurah(context.Background(), 1)

	// THEN: no partial list is returned
	assert.Nil(t, verses)
	assert.ErrorIs(t, err, storage.ErrUpstreamUnavailable)
	assert.Equal(t, int32(2), u.calls.Load())
}

func TestUnreachableUpstream(t *testing.T) {
	u := newUpstream(t, quranAPI)
	q := newProxy(t, u)
	u.Close()

	_, err := q.ListSurahs(context.Background())

	var upErr *storage.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "list surahs", upErr.Op)
	assert.Zero(t, upErr.StatusCode)
}

func TestWritesAreUnsupported(t *testing.T) {
	u := newUpstream(t, quranAPI)
	q := newProxy(t, u)
	ctx := context.Background()

	_, err := q.CreateSurah(ctx, model.Surah{Number: 1})
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	_, err = q.CreateVerse(ctx, model.Verse{SurahID: 1, Number: 1})
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	_, err = q.GetVerse(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrUnsupported)

	assert.Zero(t, u.calls.Load())
}

// =============================================================================
// RESHAPING HELPERS
// =============================================================================

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain  text\n here", "plain text here"},
		{"Guide us<sup foot_note=77>1</sup> to the straight path", "Guide us to the straight path"},
		{"<i>Emphasis</i> &amp; more", "Emphasis & more"},
		{"nested<sup>a<sup>b</sup>c</sup> end", "nested end"},
	}
	for _, tt := range tests {
		t.Run(strings.Fields(tt.in)[0], func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	q, err := New(Config{})

	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, q.base)
	assert.Equal(t, DefaultTranslationID, q.translationID)
	assert.Equal(t, DefaultReciterID, q.reciterID)
	assert.Equal(t, "https://verses.quran.com/Alafasy/mp3/001001.mp3", *q.audioURL("Alafasy/mp3/001001.mp3"))
}

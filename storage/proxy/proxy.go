/*
Package proxy serves Quran content from a remote REST API.

PURPOSE:
  Quran implements storage.QuranStore by translating each read into one or
  more HTTP calls against an API shaped like quran.com v4 and reshaping the
  answer into model types. Nothing is cached: every call goes upstream.

UPSTREAM CALLS:
  ListSurahs         GET {base}/chapters?language=en
  GetSurah(id)       GET {base}/chapters/{id}
  ListVersesBySurah  GET {base}/verses/by_chapter/{id}?...&page=N
                     followed page by page until pagination.next_page is null

RESHAPING:
  chapter.id                    -> Surah.ID and Surah.Number
  chapter.name_arabic           -> Surah.Name
  chapter.name_simple           -> Surah.EnglishName
  chapter.translated_name.name  -> Surah.EnglishNameTranslation
  chapter.revelation_place      -> Meccan (makkah) / Medinan (madinah)
  verse.translations[].text     -> Verse.Translation, footnote markup removed
  verse.audio.url               -> Verse.AudioURL, resolved against AudioBaseURL

ERRORS:
  Surah ids outside 1..114 are answered locally (absent / empty).
  HTTP 404 on GetSurah is absence. Any other failure (transport error,
  non-2xx including a 404 on a list call, undecodable body, a body missing
  its payload) is a *storage.UpstreamError wrapping
  storage.ErrUpstreamUnavailable. Writes and GetVerse return
  storage.ErrUnsupported: the upstream is read-only and has no lookup by
  verse id.

SEE ALSO:
  - ../overlay.go: storage.WithQuran, combining this with a full backend
*/
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL       = "https://api.quran.com/api/v4"
	DefaultAudioBaseURL  = "https://verses.quran.com/"
	DefaultTranslationID = 20 // Saheeh International
	DefaultReciterID     = 7  // Mishari Rashid al-Afasy
	DefaultTimeout       = 10 * time.Second

	// SurahCount bounds valid surah ids.
	SurahCount = 114

	versesPerPage = 50
	// maxPages stops a misbehaving upstream that never ends pagination.
	// The longest surah has 286 verses.
	maxPages = 20

	userAgent = "portal/1.0"
)

// Config configures the upstream. Zero values fall back to the defaults.
type Config struct {
	BaseURL       string
	AudioBaseURL  string
	TranslationID int
	ReciterID     int
	Timeout       time.Duration
	HTTPClient    *http.Client
}

// Quran is a read-only storage.QuranStore backed by HTTP.
type Quran struct {
	base          string
	audio         *url.URL
	translationID int
	reciterID     int
	client        *http.Client
}

var _ storage.QuranStore = (*Quran)(nil)

// New returns a Quran proxy. It fails only when a configured URL is invalid.
func New(cfg Config) (*Quran, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AudioBaseURL == "" {
		cfg.AudioBaseURL = DefaultAudioBaseURL
	}
	if cfg.TranslationID <= 0 {
		cfg.TranslationID = DefaultTranslationID
	}
	if cfg.ReciterID <= 0 {
		cfg.ReciterID = DefaultReciterID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	audio, err := url.Parse(cfg.AudioBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid audio base URL %q: %w", cfg.AudioBaseURL, err)
	}

	return &Quran{
		base:          trimSlash(cfg.BaseURL),
		audio:         audio,
		translationID: cfg.TranslationID,
		reciterID:     cfg.ReciterID,
		client:        cfg.HTTPClient,
	}, nil
}

// =============================================================================
// QURAN STORE
// =============================================================================

func (q *Quran) ListSurahs(ctx context.Context) ([]model.Surah, error) {
	const op = "list surahs"
	var body chaptersResponse
	found, err := q.get(ctx, op, "/chapters", url.Values{"language": {"en"}}, &body)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missing(op)
	}
	if len(body.Chapters) == 0 {
		return nil, malformed(op, "no chapters")
	}
	out := make([]model.Surah, 0, len(body.Chapters))
	for _, c := range body.Chapters {
		if !validSurah(c.ID) {
			return nil, malformed(op, fmt.Sprintf("chapter id %d", c.ID))
		}
		out = append(out, c.surah())
	}
	sortSurahs(out)
	return out, nil
}

func (q *Quran) GetSurah(ctx context.Context, id int64) (*model.Surah, error) {
	if !validSurah(id) {
		return nil, nil
	}
	const op = "get surah"
	var body chapterResponse
	found, err := q.get(ctx, op, "/chapters/"+strconv.FormatInt(id, 10), url.Values{"language": {"en"}}, &body)
	if err != nil || !found {
		return nil, err
	}
	if body.Chapter.ID != id {
		return nil, malformed(op, fmt.Sprintf("asked for chapter %d, got %d", id, body.Chapter.ID))
	}
	s := body.Chapter.surah()
	return &s, nil
}

// ListVersesBySurah walks every page of the chapter. A surah id outside
// 1..114 is an empty list; every page of a valid one must be served.
func (q *Quran) ListVersesBySurah(ctx context.Context, surahID int64) ([]model.Verse, error) {
	const op = "list verses"
	out := make([]model.Verse, 0)
	if !validSurah(surahID) {
		return out, nil
	}

	path := "/verses/by_chapter/" + strconv.FormatInt(surahID, 10)
	page := 1
	for n := 0; ; n++ {
		if n == maxPages {
			return nil, &storage.UpstreamError{
				Op:  op,
				Err: fmt.Errorf("pagination did not end after %d pages", maxPages),
			}
		}

		var body versesResponse
		found, err := q.get(ctx, op, path, q.verseParams(page), &body)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, missing(op)
		}
		for _, v := range body.Verses {
			if v.VerseNumber <= 0 {
				return nil, malformed(op, fmt.Sprintf("verse %d has no verse number", v.ID))
			}
			out = append(out, q.verse(surahID, v))
		}

		if body.Pagination.NextPage == nil {
			break
		}
		page = *body.Pagination.NextPage
	}

	// Every surah has verses.
	if len(out) == 0 {
		return nil, malformed(op, "no verses")
	}
	sortVerses(out)
	return out, nil
}

// GetVerse is not offered upstream.
func (q *Quran) GetVerse(context.Context, int64) (*model.Verse, error) {
	return nil, storage.Unsupported("get verse by id")
}

func (q *Quran) CreateSurah(context.Context, model.Surah) (model.Surah, error) {
	return model.Surah{}, storage.Unsupported("create surah")
}

func (q *Quran) CreateVerse(context.Context, model.Verse) (model.Verse, error) {
	return model.Verse{}, storage.Unsupported("create verse")
}

func (q *Quran) verseParams(page int) url.Values {
	return url.Values{
		"language":     {"en"},
		"words":        {"false"},
		"translations": {strconv.Itoa(q.translationID)},
		"audio":        {strconv.Itoa(q.reciterID)},
		"fields":       {"text_uthmani"},
		"per_page":     {strconv.Itoa(versesPerPage)},
		"page":         {strconv.Itoa(page)},
	}
}

// =============================================================================
// HTTP
// =============================================================================

// get decodes a JSON GET into out. found is false on HTTP 404.
func (q *Quran) get(ctx context.Context, op, path string, params url.Values, out any) (found bool, err error) {
	target := q.base + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, &storage.UpstreamError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := q.client.Do(req)
	if err != nil {
		// A cancelled caller is not an upstream outage.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return false, ctxErr
		}
		return false, &storage.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &storage.UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &storage.UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return true, nil
}

// missing reports a 404 where the resource must exist.
func missing(op string) error {
	return &storage.UpstreamError{Op: op, StatusCode: http.StatusNotFound}
}

// malformed reports a 2xx body that decoded but lacks its payload.
func malformed(op, reason string) error {
	return &storage.UpstreamError{Op: op, Err: fmt.Errorf("unexpected response: %s", reason)}
}

func validSurah(id int64) bool {
	return id >= 1 && id <= SurahCount
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

package api

import (
	"net/http"

	"github.com/warp/portal/model"
)

// =============================================================================
// QURAN
// =============================================================================

// ListSurahs handles GET /api/surahs
func (h *Handler) ListSurahs(w http.ResponseWriter, r *http.Request) {
	surahs, err := h.store.ListSurahs(r.Context())
	respond(w, http.StatusOK, surahs, err)
}

// GetSurah handles GET /api/surahs/{id}
func (h *Handler) GetSurah(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	surah, err := h.store.GetSurah(r.Context(), id)
	respondFound(w, "Surah", surah, err)
}

// CreateSurah handles POST /api/surahs
func (h *Handler) CreateSurah(w http.ResponseWriter, r *http.Request) {
	var s model.Surah
	if !decode(w, r, &s) {
		return
	}
	created, err := h.store.CreateSurah(r.Context(), s)
	respond(w, http.StatusCreated, created, err)
}

// ListVerses handles GET /api/surahs/{id}/verses
func (h *Handler) ListVerses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	verses, err := h.store.ListVersesBySurah(r.Context(), id)
	respond(w, http.StatusOK, verses, err)
}

// CreateVerse handles POST /api/surahs/{id}/verses. The path wins over any
// surahId in the body.
func (h *Handler) CreateVerse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var v model.Verse
	if !decode(w, r, &v) {
		return
	}
	v.SurahID = id
	created, err := h.store.CreateVerse(r.Context(), v)
	respond(w, http.StatusCreated, created, err)
}

// GetVerse handles GET /api/verses/{id}
func (h *Handler) GetVerse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	verse, err := h.store.GetVerse(r.Context(), id)
	respondFound(w, "Verse", verse, err)
}

// =============================================================================
// HADITH
// =============================================================================

func (h *Handler) ListHadithCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.store.ListHadithCollections(r.Context())
	respond(w, http.StatusOK, collections, err)
}

func (h *Handler) GetHadithCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetHadithCollection(r.Context(), id)
	respondFound(w, "Hadith collection", c, err)
}

func (h *Handler) CreateHadithCollection(w http.ResponseWriter, r *http.Request) {
	var c model.HadithCollection
	if !decode(w, r, &c) {
		return
	}
	created, err := h.store.CreateHadithCollection(r.Context(), c)
	respond(w, http.StatusCreated, created, err)
}

func (h *Handler) ListHadiths(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hadiths, err := h.store.ListHadithsByCollection(r.Context(), id)
	respond(w, http.StatusOK, hadiths, err)
}

func (h *Handler) CreateHadith(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var hd model.Hadith
	if !decode(w, r, &hd) {
		return
	}
	hd.CollectionID = id
	created, err := h.store.CreateHadith(r.Context(), hd)
	respond(w, http.StatusCreated, created, err)
}

func (h *Handler) GetHadith(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hd, err := h.store.GetHadith(r.Context(), id)
	respondFound(w, "Hadith", hd, err)
}

// =============================================================================
// COURSES
// =============================================================================

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.ListCourses(r.Context())
	respond(w, http.StatusOK, courses, err)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.store.GetCourse(r.Context(), id)
	respondFound(w, "Course", c, err)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var c model.Course
	if !decode(w, r, &c) {
		return
	}
	created, err := h.store.CreateCourse(r.Context(), c)
	respond(w, http.StatusCreated, created, err)
}

// =============================================================================
// COMMUNITY
// =============================================================================

// defaultRecentDiscussions is the feed size when ?limit= is absent.
const defaultRecentDiscussions = 10

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopics(r.Context())
	respond(w, http.StatusOK, topics, err)
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.store.GetTopic(r.Context(), id)
	respondFound(w, "Topic", t, err)
}

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var t model.Topic
	if !decode(w, r, &t) {
		return
	}
	created, err := h.store.CreateTopic(r.Context(), t)
	respond(w, http.StatusCreated, created, err)
}

// ListTopicDiscussions handles GET /api/topics/{id}/discussions
func (h *Handler) ListTopicDiscussions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	discussions, err := h.store.ListDiscussionsByTopic(r.Context(), id)
	respond(w, http.StatusOK, discussions, err)
}

// ListRecentDiscussions handles GET /api/discussions?limit=N.
// limit=0 returns the whole feed.
func (h *Handler) ListRecentDiscussions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", defaultRecentDiscussions)
	if !ok {
		return
	}
	discussions, err := h.store.ListRecentDiscussions(r.Context(), limit)
	respond(w, http.StatusOK, discussions, err)
}

func (h *Handler) GetDiscussion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := h.store.GetDiscussion(r.Context(), id)
	respondFound(w, "Discussion", d, err)
}

func (h *Handler) CreateDiscussion(w http.ResponseWriter, r *http.Request) {
	var d model.Discussion
	if !decode(w, r, &d) {
		return
	}
	created, err := h.store.CreateDiscussion(r.Context(), d)
	respond(w, http.StatusCreated, created, err)
}

func (h *Handler) DeleteDiscussion(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.store.DeleteDiscussion)
}

// =============================================================================
// USERS
// =============================================================================

// CreateUser handles POST /api/users. The password is hashed before it
// reaches the store and is never part of a response.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := req.toUser(h.cost)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user", err)
		return
	}
	created, err := h.store.CreateUser(r.Context(), u)
	respond(w, http.StatusCreated, created, err)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.store.GetUser(r.Context(), id)
	respondFound(w, "User", u, err)
}

// =============================================================================
// PRAYER TIMES
// =============================================================================

// GetPrayerTimes handles GET /api/prayer-times?date=YYYY-MM-DD&location=...
// Both parameters are optional: today and the default location.
func (h *Handler) GetPrayerTimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date := h.clock.Today()
	if raw := q.Get("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		date = d
	}
	location := q.Get("location")
	if location == "" {
		location = h.defaultLocation
	}

	p, err := h.store.GetPrayerTime(r.Context(), date, location)
	respondFound(w, "Prayer times", p, err)
}

// SavePrayerTimes handles PUT /api/prayer-times. A row for the same date and
// location is replaced.
func (h *Handler) SavePrayerTimes(w http.ResponseWriter, r *http.Request) {
	var p model.PrayerTime
	if !decode(w, r, &p) {
		return
	}
	if p.Location == "" {
		p.Location = h.defaultLocation
	}
	saved, err := h.store.SavePrayerTime(r.Context(), p)
	respond(w, http.StatusOK, saved, err)
}

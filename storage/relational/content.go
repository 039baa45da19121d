package relational

import (
	"context"
	"time"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// QURAN
// =============================================================================

const surahColumns = `id, number, name, english_name, english_name_translation, revelation_type, verses_count`

func scanSurah(sc scanner) (model.Surah, error) {
	var s model.Surah
	err := sc.Scan(&s.ID, &s.Number, &s.Name, &s.EnglishName, &s.EnglishNameTranslation, &s.RevelationType, &s.VersesCount)
	return s, err
}

func (s *Store) ListSurahs(ctx context.Context) ([]model.Surah, error) {
	rows, err := s.query(ctx, `SELECT `+surahColumns+` FROM surahs ORDER BY number, id`)
	return collect(rows, err, scanSurah)
}

func (s *Store) GetSurah(ctx context.Context, id int64) (*model.Surah, error) {
	return one(s.queryRow(ctx, `SELECT `+surahColumns+` FROM surahs WHERE id = ?`, id), scanSurah)
}

func (s *Store) CreateSurah(ctx context.Context, surah model.Surah) (model.Surah, error) {
	if err := storage.PrepareSurah(&surah); err != nil {
		return model.Surah{}, err
	}
	id, err := s.insert(ctx, "surah", `
		INSERT INTO surahs (number, name, english_name, english_name_translation, revelation_type, verses_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		surah.Number, surah.Name, surah.EnglishName, surah.EnglishNameTranslation, surah.RevelationType, surah.VersesCount,
	)
	if err != nil {
		return model.Surah{}, err
	}
	surah.ID = id
	return surah, nil
}

const verseColumns = `id, surah_id, number, text, translation, audio_url`

func scanVerse(sc scanner) (model.Verse, error) {
	var v model.Verse
	err := sc.Scan(&v.ID, &v.SurahID, &v.Number, &v.Text, &v.Translation, &v.AudioURL)
	return v, err
}

func (s *Store) ListVersesBySurah(ctx context.Context, surahID int64) ([]model.Verse, error) {
	rows, err := s.query(ctx, `SELECT `+verseColumns+` FROM verses WHERE surah_id = ? ORDER BY number, id`, surahID)
	return collect(rows, err, scanVerse)
}

func (s *Store) GetVerse(ctx context.Context, id int64) (*model.Verse, error) {
	return one(s.queryRow(ctx, `SELECT `+verseColumns+` FROM verses WHERE id = ?`, id), scanVerse)
}

func (s *Store) CreateVerse(ctx context.Context, v model.Verse) (model.Verse, error) {
	if err := storage.PrepareVerse(&v); err != nil {
		return model.Verse{}, err
	}
	id, err := s.insert(ctx, "verse", `
		INSERT INTO verses (surah_id, number, text, translation, audio_url)
		VALUES (?, ?, ?, ?, ?)`,
		v.SurahID, v.Number, v.Text, v.Translation, v.AudioURL,
	)
	if err != nil {
		return model.Verse{}, err
	}
	v.ID = id
	return v, nil
}

// =============================================================================
// HADITH
// =============================================================================

const collectionColumns = `id, name, english_name, description, total_hadiths`

func scanCollection(sc scanner) (model.HadithCollection, error) {
	var c model.HadithCollection
	err := sc.Scan(&c.ID, &c.Name, &c.EnglishName, &c.Description, &c.TotalHadiths)
	return c, err
}

func (s *Store) ListHadithCollections(ctx context.Context) ([]model.HadithCollection, error) {
	rows, err := s.query(ctx, `SELECT `+collectionColumns+` FROM hadith_collections ORDER BY id`)
	return collect(rows, err, scanCollection)
}

func (s *Store) GetHadithCollection(ctx context.Context, id int64) (*model.HadithCollection, error) {
	return one(s.queryRow(ctx, `SELECT `+collectionColumns+` FROM hadith_collections WHERE id = ?`, id), scanCollection)
}

func (s *Store) CreateHadithCollection(ctx context.Context, c model.HadithCollection) (model.HadithCollection, error) {
	if err := storage.PrepareHadithCollection(&c); err != nil {
		return model.HadithCollection{}, err
	}
	id, err := s.insert(ctx, "hadith collection", `
		INSERT INTO hadith_collections (name, english_name, description, total_hadiths)
		VALUES (?, ?, ?, ?)`,
		c.Name, c.EnglishName, c.Description, c.TotalHadiths,
	)
	if err != nil {
		return model.HadithCollection{}, err
	}
	c.ID = id
	return c, nil
}

const hadithColumns = `id, collection_id, number, text, translation, chapter, grade`

func scanHadith(sc scanner) (model.Hadith, error) {
	var h model.Hadith
	err := sc.Scan(&h.ID, &h.CollectionID, &h.Number, &h.Text, &h.Translation, &h.Chapter, &h.Grade)
	return h, err
}

func (s *Store) ListHadithsByCollection(ctx context.Context, collectionID int64) ([]model.Hadith, error) {
	rows, err := s.query(ctx, `SELECT `+hadithColumns+` FROM hadiths WHERE collection_id = ? ORDER BY number, id`, collectionID)
	return collect(rows, err, scanHadith)
}

func (s *Store) GetHadith(ctx context.Context, id int64) (*model.Hadith, error) {
	return one(s.queryRow(ctx, `SELECT `+hadithColumns+` FROM hadiths WHERE id = ?`, id), scanHadith)
}

func (s *Store) CreateHadith(ctx context.Context, h model.Hadith) (model.Hadith, error) {
	if err := storage.PrepareHadith(&h); err != nil {
		return model.Hadith{}, err
	}
	id, err := s.insert(ctx, "hadith", `
		INSERT INTO hadiths (collection_id, number, text, translation, chapter, grade)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.CollectionID, h.Number, h.Text, h.Translation, h.Chapter, h.Grade,
	)
	if err != nil {
		return model.Hadith{}, err
	}
	h.ID = id
	return h, nil
}

// =============================================================================
// COURSES
// =============================================================================

const courseColumns = `id, title, description, level, duration, image_url, instructor_id, rating, review_count, created_at`

func scanCourse(sc scanner) (model.Course, error) {
	var c model.Course
	err := sc.Scan(&c.ID, &c.Title, &c.Description, &c.Level, &c.Duration, &c.ImageURL,
		&c.InstructorID, &c.Rating, &c.ReviewCount, &c.CreatedAt)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

func (s *Store) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC, id DESC`)
	return collect(rows, err, scanCourse)
}

func (s *Store) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	return one(s.queryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id), scanCourse)
}

func (s *Store) CreateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	if err := storage.PrepareCourse(&c, s.clock); err != nil {
		return model.Course{}, err
	}
	id, err := s.insert(ctx, "course", `
		INSERT INTO courses (title, description, level, duration, image_url, instructor_id, rating, review_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Level, c.Duration, c.ImageURL, c.InstructorID, c.Rating, c.ReviewCount, c.CreatedAt,
	)
	if err != nil {
		return model.Course{}, err
	}
	c.ID = id
	return c, nil
}

// =============================================================================
// COMMUNITY
// =============================================================================

const topicColumns = `id, name, description, icon, posts_count`

func scanTopic(sc scanner) (model.Topic, error) {
	var t model.Topic
	err := sc.Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &t.PostsCount)
	return t, err
}

func (s *Store) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := s.query(ctx, `SELECT `+topicColumns+` FROM topics ORDER BY id`)
	return collect(rows, err, scanTopic)
}

func (s *Store) GetTopic(ctx context.Context, id int64) (*model.Topic, error) {
	return one(s.queryRow(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = ?`, id), scanTopic)
}

func (s *Store) CreateTopic(ctx context.Context, t model.Topic) (model.Topic, error) {
	if err := storage.PrepareTopic(&t); err != nil {
		return model.Topic{}, err
	}
	id, err := s.insert(ctx, "topic", `
		INSERT INTO topics (name, description, icon, posts_count)
		VALUES (?, ?, ?, ?)`,
		t.Name, t.Description, t.Icon, t.PostsCount,
	)
	if err != nil {
		return model.Topic{}, err
	}
	t.ID = id
	return t, nil
}

const discussionColumns = `id, topic_id, user_id, title, content, status, comments_count, views_count, created_at`

func scanDiscussion(sc scanner) (model.Discussion, error) {
	var d model.Discussion
	err := sc.Scan(&d.ID, &d.TopicID, &d.UserID, &d.Title, &d.Content, &d.Status,
		&d.CommentsCount, &d.ViewsCount, &d.CreatedAt)
	d.CreatedAt = d.CreatedAt.UTC()
	return d, err
}

func (s *Store) ListDiscussionsByTopic(ctx context.Context, topicID int64) ([]model.Discussion, error) {
	rows, err := s.query(ctx, `
		SELECT `+discussionColumns+` FROM discussions
		WHERE topic_id = ?
		ORDER BY created_at DESC, id DESC`, topicID)
	return collect(rows, err, scanDiscussion)
}

func (s *Store) ListRecentDiscussions(ctx context.Context, limit int) ([]model.Discussion, error) {
	query := `SELECT ` + discussionColumns + ` FROM discussions ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.query(ctx, query, args...)
	return collect(rows, err, scanDiscussion)
}

func (s *Store) GetDiscussion(ctx context.Context, id int64) (*model.Discussion, error) {
	return one(s.queryRow(ctx, `SELECT `+discussionColumns+` FROM discussions WHERE id = ?`, id), scanDiscussion)
}

// CreateDiscussion leaves topics.posts_count as it is.
func (s *Store) CreateDiscussion(ctx context.Context, d model.Discussion) (model.Discussion, error) {
	if err := storage.PrepareDiscussion(&d, s.clock); err != nil {
		return model.Discussion{}, err
	}
	id, err := s.insert(ctx, "discussion", `
		INSERT INTO discussions (topic_id, user_id, title, content, status, comments_count, views_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.TopicID, d.UserID, d.Title, d.Content, d.Status, d.CommentsCount, d.ViewsCount, d.CreatedAt,
	)
	if err != nil {
		return model.Discussion{}, err
	}
	d.ID = id
	return d, nil
}

func (s *Store) DeleteDiscussion(ctx context.Context, id int64) error {
	return s.remove(ctx, "discussion", "discussions", id)
}

// =============================================================================
// USERS
// =============================================================================

const userColumns = `id, username, password, email, full_name, profile_image, created_at`

func scanUser(sc scanner) (model.User, error) {
	var u model.User
	err := sc.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.FullName, &u.ProfileImage, &u.CreatedAt)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, err
}

func (s *Store) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return one(s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id), scanUser)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return one(s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username), scanUser)
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if err := storage.PrepareUser(&u, s.clock); err != nil {
		return model.User{}, err
	}
	id, err := s.insert(ctx, "user", `
		INSERT INTO users (username, password, email, full_name, profile_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.Password, u.Email, u.FullName, u.ProfileImage, u.CreatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	u.ID = id
	return u, nil
}

// =============================================================================
// PRAYER TIMES
// =============================================================================

const prayerColumns = `id, date, location, fajr, dhuhr, asr, maghrib, isha`

func scanPrayerTime(sc scanner) (model.PrayerTime, error) {
	var p model.PrayerTime
	err := sc.Scan(&p.ID, &p.Date, &p.Location, &p.Fajr, &p.Dhuhr, &p.Asr, &p.Maghrib, &p.Isha)
	return p, err
}

func (s *Store) GetPrayerTime(ctx context.Context, date model.Date, location string) (*model.PrayerTime, error) {
	return one(s.queryRow(ctx, `SELECT `+prayerColumns+` FROM prayer_times WHERE date = ? AND location = ?`, date, location), scanPrayerTime)
}

// SavePrayerTime upserts on (date, location); an existing row keeps its id.
func (s *Store) SavePrayerTime(ctx context.Context, p model.PrayerTime) (model.PrayerTime, error) {
	if err := storage.PreparePrayerTime(&p); err != nil {
		return model.PrayerTime{}, err
	}
	id, err := s.insert(ctx, "prayer time", `
		INSERT INTO prayer_times (date, location, fajr, dhuhr, asr, maghrib, isha)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date, location) DO UPDATE SET
			fajr = excluded.fajr,
			dhuhr = excluded.dhuhr,
			asr = excluded.asr,
			maghrib = excluded.maghrib,
			isha = excluded.isha`,
		p.Date, p.Location, p.Fajr, p.Dhuhr, p.Asr, p.Maghrib, p.Isha,
	)
	if err != nil {
		return model.PrayerTime{}, err
	}
	p.ID = id
	return p, nil
}

// utcPtr normalizes a nullable instant read back from the driver.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

package memory

import (
	"context"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// QURAN
// =============================================================================

func (s *Store) ListSurahs(_ context.Context) ([]model.Surah, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surahs.sorted(func(a, b model.Surah) bool {
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	}), nil
}

func (s *Store) GetSurah(_ context.Context, id int64) (*model.Surah, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surahs.get(id), nil
}

func (s *Store) CreateSurah(_ context.Context, surah model.Surah) (model.Surah, error) {
	if err := storage.PrepareSurah(&surah); err != nil {
		return model.Surah{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.surahNumbers[surah.Number]; taken {
		return model.Surah{}, storage.Conflict("surah", "number")
	}
	surah.ID = s.surahs.nextID()
	s.surahs.put(surah.ID, surah)
	s.surahNumbers[surah.Number] = surah.ID
	return surah, nil
}

func (s *Store) ListVersesBySurah(_ context.Context, surahID int64) ([]model.Verse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verses.pick(s.versesBySurah[surahID]), nil
}

func (s *Store) GetVerse(_ context.Context, id int64) (*model.Verse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verses.get(id), nil
}

func (s *Store) CreateVerse(_ context.Context, v model.Verse) (model.Verse, error) {
	if err := storage.PrepareVerse(&v); err != nil {
		return model.Verse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.surahs.has(v.SurahID) {
		return model.Verse{}, storage.MissingParent("verse", "surahId", v.SurahID)
	}
	key := verseKey{SurahID: v.SurahID, Number: v.Number}
	if _, taken := s.verseNumbers[key]; taken {
		return model.Verse{}, storage.Conflict("verse", "surahId,number")
	}

	v.ID = s.verses.nextID()
	s.verses.put(v.ID, v)
	s.verseNumbers[key] = v.ID
	s.versesBySurah[v.SurahID] = insertSorted(s.versesBySurah[v.SurahID], v.ID, func(a, b int64) bool {
		va, vb := s.verses.rows[a], s.verses.rows[b]
		if va.Number != vb.Number {
			return va.Number < vb.Number
		}
		return va.ID < vb.ID
	})
	return v, nil
}

// =============================================================================
// HADITH
// =============================================================================

func (s *Store) ListHadithCollections(_ context.Context) ([]model.HadithCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hadithCollections.sorted(func(a, b model.HadithCollection) bool { return a.ID < b.ID }), nil
}

func (s *Store) GetHadithCollection(_ context.Context, id int64) (*model.HadithCollection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hadithCollections.get(id), nil
}

func (s *Store) CreateHadithCollection(_ context.Context, c model.HadithCollection) (model.HadithCollection, error) {
	if err := storage.PrepareHadithCollection(&c); err != nil {
		return model.HadithCollection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.hadithCollections.nextID()
	s.hadithCollections.put(c.ID, c)
	return c, nil
}

func (s *Store) ListHadithsByCollection(_ context.Context, collectionID int64) ([]model.Hadith, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hadiths.pick(s.hadithsByCollection[collectionID]), nil
}

func (s *Store) GetHadith(_ context.Context, id int64) (*model.Hadith, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hadiths.get(id), nil
}

func (s *Store) CreateHadith(_ context.Context, h model.Hadith) (model.Hadith, error) {
	if err := storage.PrepareHadith(&h); err != nil {
		return model.Hadith{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hadithCollections.has(h.CollectionID) {
		return model.Hadith{}, storage.MissingParent("hadith", "collectionId", h.CollectionID)
	}
	h.ID = s.hadiths.nextID()
	s.hadiths.put(h.ID, h)
	s.hadithsByCollection[h.CollectionID] = insertSorted(s.hadithsByCollection[h.CollectionID], h.ID, func(a, b int64) bool {
		ha, hb := s.hadiths.rows[a], s.hadiths.rows[b]
		if ha.Number != hb.Number {
			return ha.Number < hb.Number
		}
		return ha.ID < hb.ID
	})
	return h, nil
}

// =============================================================================
// COURSES
// =============================================================================

func (s *Store) ListCourses(_ context.Context) ([]model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses.sorted(func(a, b model.Course) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}), nil
}

func (s *Store) GetCourse(_ context.Context, id int64) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courses.get(id), nil
}

func (s *Store) CreateCourse(_ context.Context, c model.Course) (model.Course, error) {
	if err := storage.PrepareCourse(&c, s.clock); err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.courses.nextID()
	s.courses.put(c.ID, c)
	return c, nil
}

// =============================================================================
// COMMUNITY
// =============================================================================

func (s *Store) ListTopics(_ context.Context) ([]model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topics.sorted(func(a, b model.Topic) bool { return a.ID < b.ID }), nil
}

func (s *Store) GetTopic(_ context.Context, id int64) (*model.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topics.get(id), nil
}

func (s *Store) CreateTopic(_ context.Context, t model.Topic) (model.Topic, error) {
	if err := storage.PrepareTopic(&t); err != nil {
		return model.Topic{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.topics.nextID()
	s.topics.put(t.ID, t)
	return t, nil
}

func newestDiscussion(a, b model.Discussion) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *Store) ListDiscussionsByTopic(_ context.Context, topicID int64) ([]model.Discussion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.discussions.pick(s.discussionsByTopic[topicID]), nil
}

func (s *Store) ListRecentDiscussions(_ context.Context, limit int) ([]model.Discussion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.discussions.sorted(newestDiscussion)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Store) GetDiscussion(_ context.Context, id int64) (*model.Discussion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.discussions.get(id), nil
}

// CreateDiscussion leaves the topic's PostsCount as it is.
func (s *Store) CreateDiscussion(_ context.Context, d model.Discussion) (model.Discussion, error) {
	if err := storage.PrepareDiscussion(&d, s.clock); err != nil {
		return model.Discussion{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.topics.has(d.TopicID) {
		return model.Discussion{}, storage.MissingParent("discussion", "topicId", d.TopicID)
	}
	if !s.users.has(d.UserID) {
		return model.Discussion{}, storage.MissingParent("discussion", "userId", d.UserID)
	}

	d.ID = s.discussions.nextID()
	s.discussions.put(d.ID, d)
	s.discussionsByTopic[d.TopicID] = insertSorted(s.discussionsByTopic[d.TopicID], d.ID, func(a, b int64) bool {
		return newestDiscussion(s.discussions.rows[a], s.discussions.rows[b])
	})
	return d, nil
}

func (s *Store) DeleteDiscussion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.discussions.rows[id]
	if !ok {
		return storage.NotFound("discussion", id)
	}
	delete(s.discussions.rows, id)
	s.discussionsByTopic[d.TopicID] = removeID(s.discussionsByTopic[d.TopicID], id)
	return nil
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) GetUser(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernames[username]
	if !ok {
		return nil, nil
	}
	return s.users.get(id), nil
}

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	if err := storage.PrepareUser(&u, s.clock); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[u.Username]; taken {
		return model.User{}, storage.Conflict("user", "username")
	}
	u.ID = s.users.nextID()
	s.users.put(u.ID, u)
	s.usernames[u.Username] = u.ID
	return u, nil
}

// =============================================================================
// PRAYER TIMES
// =============================================================================

func (s *Store) GetPrayerTime(_ context.Context, date model.Date, location string) (*model.PrayerTime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.prayerSlots[prayerKey{Date: date, Location: location}]
	if !ok {
		return nil, nil
	}
	return s.prayerTimes.get(id), nil
}

// SavePrayerTime stores the times for (date, location), replacing any
// previous entry for the same key and keeping its id.
func (s *Store) SavePrayerTime(_ context.Context, p model.PrayerTime) (model.PrayerTime, error) {
	if err := storage.PreparePrayerTime(&p); err != nil {
		return model.PrayerTime{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := prayerKey{Date: p.Date, Location: p.Location}
	if id, ok := s.prayerSlots[key]; ok {
		p.ID = id
	} else {
		p.ID = s.prayerTimes.nextID()
		s.prayerSlots[key] = p.ID
	}
	s.prayerTimes.put(p.ID, p)
	return p, nil
}

package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

func testQuran(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)

	// GIVEN: surahs created out of order
	baqarah, err := s.CreateSurah(ctx, model.Surah{Number: 2, Name: "البقرة", EnglishName: "Al-Baqarah",
		EnglishNameTranslation: "The Cow", RevelationType: model.RevelationMedinan, VersesCount: 286})
	require.NoError(t, err)
	fatihah, err := s.CreateSurah(ctx, model.Surah{ID: 77, Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatihah",
		EnglishNameTranslation: "The Opening", RevelationType: model.RevelationMeccan, VersesCount: 7})
	require.NoError(t, err)

	// THEN: ids are assigned by the store and the list is ordered by number
	assert.Positive(t, baqarah.ID)
	assert.NotEqual(t, int64(77), fatihah.ID)
	assert.NotEqual(t, baqarah.ID, fatihah.ID)

	surahs, err := s.ListSurahs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{fatihah.ID, baqarah.ID}, ids(surahs, func(s model.Surah) int64 { return s.ID }))

	got, err := s.GetSurah(ctx, fatihah.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fatihah, *got)

	t.Run("absent surah", func(t *testing.T) {
		got, err := s.GetSurah(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate number conflicts", func(t *testing.T) {
		_, err := s.CreateSurah(ctx, model.Surah{Number: 1, Name: "x", EnglishName: "x", VersesCount: 1})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("out of range number is invalid", func(t *testing.T) {
		_, err := s.CreateSurah(ctx, model.Surah{Number: 115, Name: "x", EnglishName: "x", VersesCount: 1})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	// GIVEN: verses created out of order
	for _, n := range []int{3, 1, 2} {
		_, err := s.CreateVerse(ctx, model.Verse{SurahID: fatihah.ID, Number: n, Text: "آية", Translation: "verse"})
		require.NoError(t, err)
	}

	t.Run("verses ordered by number", func(t *testing.T) {
		verses, err := s.ListVersesBySurah(ctx, fatihah.ID)
		require.NoError(t, err)
		require.Len(t, verses, 3)
		for i, v := range verses {
			assert.Equal(t, i+1, v.Number)
			assert.Equal(t, fatihah.ID, v.SurahID)
		}

		got, err := s.GetVerse(ctx, verses[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, verses[0], *got)
	})

	t.Run("verses of another surah stay separate", func(t *testing.T) {
		verses, err := s.ListVersesBySurah(ctx, baqarah.ID)
		require.NoError(t, err)
		assert.NotNil(t, verses)
		assert.Empty(t, verses)

		verses, err = s.ListVersesBySurah(ctx, 9999)
		require.NoError(t, err)
		assert.NotNil(t, verses)
		assert.Empty(t, verses)
	})

	t.Run("duplicate verse conflicts", func(t *testing.T) {
		_, err := s.CreateVerse(ctx, model.Verse{SurahID: fatihah.ID, Number: 2, Text: "x"})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("verse of unknown surah is invalid", func(t *testing.T) {
		_, err := s.CreateVerse(ctx, model.Verse{SurahID: 9999, Number: 1, Text: "x"})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})
}

func testHadith(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)

	bukhari, err := s.CreateHadithCollection(ctx, model.HadithCollection{Name: "صحيح البخاري", EnglishName: "Sahih Bukhari", TotalHadiths: 7563})
	require.NoError(t, err)
	muslim, err := s.CreateHadithCollection(ctx, model.HadithCollection{Name: "صحيح مسلم", EnglishName: "Sahih Muslim", TotalHadiths: 7500})
	require.NoError(t, err)

	collections, err := s.ListHadithCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{bukhari.ID, muslim.ID}, ids(collections, func(c model.HadithCollection) int64 { return c.ID }))

	for _, n := range []int{20, 5, 11} {
		_, err := s.CreateHadith(ctx, model.Hadith{CollectionID: bukhari.ID, Number: n, Text: "حديث", Grade: ptr("Sahih")})
		require.NoError(t, err)
	}

	hadiths, err := s.ListHadithsByCollection(ctx, bukhari.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 11, 20}, ids(hadiths, func(h model.Hadith) int64 { return int64(h.Number) }))
	require.NotNil(t, hadiths[0].Grade)
	assert.Equal(t, "Sahih", *hadiths[0].Grade)
	assert.Nil(t, hadiths[0].Chapter)

	other, err := s.ListHadithsByCollection(ctx, muslim.ID)
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)

	got, err := s.GetHadith(ctx, hadiths[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, hadiths[1], *got)

	missing, err := s.GetHadithCollection(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.CreateHadith(ctx, model.Hadith{CollectionID: 9999, Number: 1, Text: "x"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func testCourses(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, clk := fresh(t, newStore)

	create := func(title string, at time.Time) model.Course {
		t.Helper()
		clk.Set(at)
		c, err := s.CreateCourse(ctx, model.Course{Title: title, InstructorID: 1, Rating: ptr(model.Rating(45)),
			CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
		return c
	}

	// GIVEN: courses created at different instants
	middle := create("Middle", Now)
	oldest := create("Oldest", Now.Add(-time.Hour))
	newest := create("Newest", Now.Add(time.Hour))
	tie := create("Tie", Now)

	// THEN: createdAt comes from the clock and level defaults
	assert.True(t, middle.CreatedAt.Equal(Now), "createdAt %v", middle.CreatedAt)
	assert.Equal(t, model.LevelBeginner, middle.Level)

	got, err := s.GetCourse(ctx, middle.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.CreatedAt.Equal(Now))
	require.NotNil(t, got.Rating)
	assert.Equal(t, model.Rating(45), *got.Rating)
	assert.Nil(t, got.ReviewCount)

	// AND: the list is newest first, ties broken by id descending
	courses, err := s.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t,
		[]int64{newest.ID, tie.ID, middle.ID, oldest.ID},
		ids(courses, func(c model.Course) int64 { return c.ID }))

	_, err = s.CreateCourse(ctx, model.Course{Title: "Bad", InstructorID: 1, Level: "expert"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func testCommunity(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, clk := fresh(t, newStore)

	prayer, err := s.CreateTopic(ctx, model.Topic{Name: "Prayer & Worship", Icon: ptr("pray"), PostsCount: 7})
	require.NoError(t, err)
	history, err := s.CreateTopic(ctx, model.Topic{Name: "Islamic History"})
	require.NoError(t, err)
	user, err := s.CreateUser(ctx, model.User{Username: "sarah_89", Password: "hash", Email: "sarah@example.com"})
	require.NoError(t, err)

	topics, err := s.ListTopics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{prayer.ID, history.ID}, ids(topics, func(t model.Topic) int64 { return t.ID }))
	assert.Equal(t, 7, topics[0].PostsCount)

	post := func(topicID int64, title string, at time.Time) model.Discussion {
		t.Helper()
		clk.Set(at)
		d, err := s.CreateDiscussion(ctx, model.Discussion{TopicID: topicID, UserID: user.ID, Title: title,
			Content: "...", CommentsCount: 40, ViewsCount: 900})
		require.NoError(t, err)
		return d
	}

	// GIVEN: three discussions at different times
	first := post(prayer.ID, "Witr", Now.Add(-48*time.Hour))
	second := post(history.ID, "Andalus", Now.Add(-24*time.Hour))
	third := post(prayer.ID, "Qunut", Now)

	t.Run("server fields are assigned", func(t *testing.T) {
		assert.Zero(t, first.CommentsCount)
		assert.Zero(t, first.ViewsCount)
		assert.Equal(t, model.DiscussionOpen, first.Status)
		assert.True(t, first.CreatedAt.Equal(Now.Add(-48*time.Hour)))
	})

	t.Run("creating a discussion leaves postsCount alone", func(t *testing.T) {
		got, err := s.GetTopic(ctx, prayer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 7, got.PostsCount)
	})

	t.Run("by topic newest first", func(t *testing.T) {
		list, err := s.ListDiscussionsByTopic(ctx, prayer.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{third.ID, first.ID}, ids(list, func(d model.Discussion) int64 { return d.ID }))
	})

	t.Run("recent feed honors the limit", func(t *testing.T) {
		list, err := s.ListRecentDiscussions(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{third.ID, second.ID}, ids(list, func(d model.Discussion) int64 { return d.ID }))

		all, err := s.ListRecentDiscussions(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("unknown parents are invalid", func(t *testing.T) {
		_, err := s.CreateDiscussion(ctx, model.Discussion{TopicID: 9999, UserID: user.ID, Title: "x", Content: "x"})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateDiscussion(ctx, model.Discussion{TopicID: prayer.ID, UserID: 9999, Title: "x", Content: "x"})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteDiscussion(ctx, first.ID))

		got, err := s.GetDiscussion(ctx, first.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		list, err := s.ListDiscussionsByTopic(ctx, prayer.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{third.ID}, ids(list, func(d model.Discussion) int64 { return d.ID }))

		assert.ErrorIs(t, s.DeleteDiscussion(ctx, first.ID), storage.ErrNotFound)
	})
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)

	u, err := s.CreateUser(ctx, model.User{Username: "omar_j", Password: "$2a$10$hash", Email: "omar@example.com", FullName: ptr("Omar Javed")})
	require.NoError(t, err)
	assert.True(t, u.CreatedAt.Equal(Now))

	byName, err := s.GetUserByUsername(ctx, "omar_j")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "$2a$10$hash", byName.Password)

	byID, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Omar Javed", *byID.FullName)

	missing, err := s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.CreateUser(ctx, model.User{Username: "omar_j", Password: "x", Email: "other@example.com"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.CreateUser(ctx, model.User{Username: "bad", Password: "x", Email: "not-an-email"})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func testPrayerTimes(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	const london = "London, United Kingdom"

	missing, err := s.GetPrayerTime(ctx, Today, london)
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := s.SavePrayerTime(ctx, model.PrayerTime{Date: Today, Location: london,
		Fajr: "04:23", Dhuhr: "12:45", Asr: "16:24", Maghrib: "20:04", Isha: "21:35"})
	require.NoError(t, err)

	got, err := s.GetPrayerTime(ctx, Today, london)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved, *got)

	t.Run("saving the same slot replaces it", func(t *testing.T) {
		again, err := s.SavePrayerTime(ctx, model.PrayerTime{Date: Today, Location: london,
			Fajr: "04:21", Dhuhr: "12:45", Asr: "16:25", Maghrib: "20:06", Isha: "21:38"})
		require.NoError(t, err)
		assert.Equal(t, saved.ID, again.ID)

		got, err := s.GetPrayerTime(ctx, Today, london)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "04:21", got.Fajr)
	})

	t.Run("other slots are separate", func(t *testing.T) {
		other, err := s.SavePrayerTime(ctx, model.PrayerTime{Date: Today.AddDays(1), Location: london,
			Fajr: "04:20", Dhuhr: "12:45", Asr: "16:25", Maghrib: "20:07", Isha: "21:40"})
		require.NoError(t, err)
		assert.NotEqual(t, saved.ID, other.ID)

		got, err := s.GetPrayerTime(ctx, Today, "Cairo, Egypt")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	_, err = s.SavePrayerTime(ctx, model.PrayerTime{Date: Today, Location: london})
	assert.ErrorIs(t, err, storage.ErrValidation)
}

package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
)

// =============================================================================
// SAMPLE DATA
// =============================================================================

func testSeeded(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, clk := fresh(t, newStore)
	require.NoError(t, seed.Load(ctx, s, clk.Clock()))

	t.Run("content", func(t *testing.T) {
		surahs, err := s.ListSurahs(ctx)
		require.NoError(t, err)
		require.Len(t, surahs, 5)
		assert.Equal(t, "Al-Fatihah", surahs[0].EnglishName)

		verses, err := s.ListVersesBySurah(ctx, surahs[0].ID)
		require.NoError(t, err)
		require.Len(t, verses, 7)
		require.NotNil(t, verses[6].AudioURL)
		assert.Equal(t, "https://verses.quran.com/Abdul_Basit_Murattal_64kbps/001007.mp3", *verses[6].AudioURL)

		collections, err := s.ListHadithCollections(ctx)
		require.NoError(t, err)
		require.Len(t, collections, 3)
		hadiths, err := s.ListHadithsByCollection(ctx, collections[2].ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 7, 13}, ids(hadiths, func(h model.Hadith) int64 { return int64(h.Number) }))

		feed, err := s.ListRecentDiscussions(ctx, 0)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		assert.Equal(t, "Understanding the concept of 'Taqwa' in the Quran", feed[0].Title)

		user, err := s.GetUserByUsername(ctx, "sarah_89")
		require.NoError(t, err)
		require.NotNil(t, user)

		prayer, err := s.GetPrayerTime(ctx, Today, seed.DefaultLocation)
		require.NoError(t, err)
		require.NotNil(t, prayer)
		assert.Equal(t, "04:23", prayer.Fajr)
	})

	t.Run("dashboard", func(t *testing.T) {
		stats, err := s.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DashboardStats{TotalEmployees: 7, ActiveEmployees: 5, TotalDepartments: 5, OpenJobPostings: 2}, stats)

		heads, err := s.DepartmentHeadcounts(ctx)
		require.NoError(t, err)
		got := make(map[string]int, len(heads))
		names := make([]string, 0, len(heads))
		for _, h := range heads {
			got[h.Name] = h.Employees
			names = append(names, h.Name)
		}
		assert.Equal(t, []string{"Engineering", "Finance", "Human Resources", "Legal", "Marketing"}, names)
		assert.Equal(t, map[string]int{"Engineering": 4, "Finance": 1, "Human Resources": 1, "Legal": 0, "Marketing": 1}, got)

		leave, err := s.LeaveStatusBreakdown(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.StatusCount{
			{Status: "approved", Count: 2},
			{Status: "pending", Count: 2},
			{Status: "rejected", Count: 1},
		}, leave)
	})

	t.Run("aggregates agree with the lists", func(t *testing.T) {
		employees, err := s.ListEmployees(ctx)
		require.NoError(t, err)
		departments, err := s.ListDepartments(ctx)
		require.NoError(t, err)
		stats, err := s.DashboardStats(ctx)
		require.NoError(t, err)
		heads, err := s.DepartmentHeadcounts(ctx)
		require.NoError(t, err)

		// every seeded employee has a department
		viewTotal := 0
		for _, d := range departments {
			viewTotal += d.EmployeeCount
		}
		headTotal := 0
		for _, h := range heads {
			headTotal += h.Employees
		}
		assert.Equal(t, len(employees), stats.TotalEmployees)
		assert.Equal(t, len(employees), viewTotal)
		assert.Equal(t, viewTotal, headTotal)
		assert.Equal(t, len(departments), stats.TotalDepartments)
	})

	t.Run("today's attendance", func(t *testing.T) {
		rows, err := s.ListAttendance(ctx, Today)
		require.NoError(t, err)
		names := make([]string, 0, len(rows))
		for _, r := range rows {
			names = append(names, r.EmployeeName)
		}
		assert.Equal(t, []string{"Amina Diallo", "Layla Hassan", "Daniel Okafor", "Yusuf Rahman"}, names)
	})

	t.Run("current payroll month", func(t *testing.T) {
		rows, err := s.ListPayroll(ctx, Today.Year, int(Today.Month))
		require.NoError(t, err)
		assert.Len(t, rows, 4)
	})
}

// =============================================================================
// PARITY
// =============================================================================

// RunParity seeds a store from each factory with the same clock and requires
// every read to encode to the same JSON.
func RunParity(t *testing.T, want, got Factory) {
	ctx := context.Background()
	a, aClock := fresh(t, want)
	b, bClock := fresh(t, got)
	require.NoError(t, seed.Load(ctx, a, aClock.Clock()))
	require.NoError(t, seed.Load(ctx, b, bClock.Clock()))

	for _, r := range parityReads {
		t.Run(r.name, func(t *testing.T) {
			w, err := r.read(ctx, a)
			require.NoError(t, err)
			g, err := r.read(ctx, b)
			require.NoError(t, err)
			sameJSON(t, w, g)
		})
	}
}

var parityReads = []struct {
	name string
	read func(ctx context.Context, s storage.Storage) (any, error)
}{
	{"surahs", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListSurahs(ctx) }},
	{"verses", func(ctx context.Context, s storage.Storage) (any, error) {
		surahs, err := s.ListSurahs(ctx)
		if err != nil || len(surahs) == 0 {
			return nil, err
		}
		return s.ListVersesBySurah(ctx, surahs[0].ID)
	}},
	{"hadith collections", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListHadithCollections(ctx) }},
	{"hadiths", func(ctx context.Context, s storage.Storage) (any, error) {
		collections, err := s.ListHadithCollections(ctx)
		if err != nil {
			return nil, err
		}
		out := make([][]model.Hadith, 0, len(collections))
		for _, c := range collections {
			h, err := s.ListHadithsByCollection(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, h)
		}
		return out, nil
	}},
	{"courses", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListCourses(ctx) }},
	{"topics", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListTopics(ctx) }},
	{"recent discussions", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListRecentDiscussions(ctx, 2) }},
	{"user", func(ctx context.Context, s storage.Storage) (any, error) { return s.GetUserByUsername(ctx, "ahmed_123") }},
	{"prayer time", func(ctx context.Context, s storage.Storage) (any, error) {
		return s.GetPrayerTime(ctx, Today, seed.DefaultLocation)
	}},
	{"departments", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListDepartments(ctx) }},
	{"positions", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListPositions(ctx) }},
	{"employees", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListEmployees(ctx) }},
	{"attendance", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListAttendance(ctx, model.Date{}) }},
	{"leave types", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListLeaveTypes(ctx) }},
	{"leave requests", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListLeaveRequests(ctx) }},
	{"payroll", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListPayroll(ctx, 0, 0) }},
	{"reviews", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListPerformanceReviews(ctx) }},
	{"training programs", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListTrainingPrograms(ctx) }},
	{"employee training", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListEmployeeTrainings(ctx) }},
	{"job postings", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListJobPostings(ctx) }},
	{"job applications", func(ctx context.Context, s storage.Storage) (any, error) { return s.ListJobApplications(ctx) }},
	{"dashboard stats", func(ctx context.Context, s storage.Storage) (any, error) { return s.DashboardStats(ctx) }},
	{"headcounts", func(ctx context.Context, s storage.Storage) (any, error) { return s.DepartmentHeadcounts(ctx) }},
	{"leave breakdown", func(ctx context.Context, s storage.Storage) (any, error) { return s.LeaveStatusBreakdown(ctx) }},
}

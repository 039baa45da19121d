package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
)

func TestLoad_FollowsTheClock(t *testing.T) {
	// GIVEN: a clock in early January
	ctx := context.Background()
	clock := storage.FixedClock(time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC))
	s := memory.New(memory.WithClock(clock))

	// WHEN: seeding
	require.NoError(t, seed.Load(ctx, s, clock))

	// THEN: last month's payroll lands in December of the previous year
	december, err := s.ListPayroll(ctx, 2025, 12)
	require.NoError(t, err)
	assert.Len(t, december, 2)
	for _, p := range december {
		require.NotNil(t, p.PaymentDate)
		assert.Equal(t, model.NewDate(2025, time.December, 31), *p.PaymentDate)
	}

	january, err := s.ListPayroll(ctx, 2026, 1)
	require.NoError(t, err)
	assert.Len(t, january, 4)

	// AND: today's prayer times and attendance exist
	today := model.NewDate(2026, time.January, 5)
	p, err := s.GetPrayerTime(ctx, today, seed.DefaultLocation)
	require.NoError(t, err)
	assert.NotNil(t, p)

	attendance, err := s.ListAttendance(ctx, today)
	require.NoError(t, err)
	assert.Len(t, attendance, 4)
}

func TestLoad_SecondRunConflicts(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, seed.Load(ctx, s, nil))

	err := seed.Load(ctx, s, nil)
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.ErrorContains(t, err, "seed content")
}

func TestLoad_ManagersResolved(t *testing.T) {
	ctx := context.Background()
	s, err := memory.Seeded(ctx)
	require.NoError(t, err)

	departments, err := s.ListDepartments(ctx)
	require.NoError(t, err)

	managers := map[string]string{}
	for _, d := range departments {
		if d.ManagerName != nil {
			managers[d.Name] = *d.ManagerName
		}
	}
	assert.Equal(t, map[string]string{
		"Engineering":     "Layla Hassan",
		"Human Resources": "Yusuf Rahman",
		"Finance":         "Clara Novak",
	}, managers)
}

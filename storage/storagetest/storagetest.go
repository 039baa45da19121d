/*
Package storagetest is the behavioral contract every writable storage
backend must satisfy.

PURPOSE:
  Run exercises a fresh store per case through the storage.Storage interface
  only: orderings, absence, server-side fields, patches, uniqueness,
  referential checks and aggregates. RunParity seeds two backends with the
  same sample set and requires every read to answer identically.

USAGE:
  func TestContract(t *testing.T) {
      storagetest.Run(t, func(t *testing.T, clock storage.Clock) storage.Storage {
          return memory.New(memory.WithClock(clock))
      })
  }

  Errors are checked by kind (errors.Is) only; messages may differ between
  backends.
*/
package storagetest

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// Factory returns a new, empty store stamping rows with clock.
type Factory func(t *testing.T, clock storage.Clock) storage.Storage

// Now is the instant the suite's clock starts at.
var Now = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

// Today is the calendar date of Now.
var Today = model.DateOf(Now)

// Run runs the whole contract against newStore.
func Run(t *testing.T, newStore Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, newStore Factory)
	}{
		{"Quran", testQuran},
		{"Hadith", testHadith},
		{"Courses", testCourses},
		{"Community", testCommunity},
		{"Users", testUsers},
		{"PrayerTimes", testPrayerTimes},
		{"Departments", testDepartments},
		{"Employees", testEmployees},
		{"Attendance", testAttendance},
		{"Leave", testLeave},
		{"Payroll", testPayroll},
		{"Reviews", testReviews},
		{"Training", testTraining},
		{"Recruitment", testRecruitment},
		{"Stats", testStats},
		{"Seeded", testSeeded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) { c.fn(t, newStore) })
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// clock is a settable storage.Clock.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: Now} }

func (c *clock) Clock() storage.Clock {
	return func() time.Time {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.now
	}
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func fresh(t *testing.T, newStore Factory) (storage.Storage, *clock) {
	t.Helper()
	c := newClock()
	return newStore(t, c.Clock()), c
}

func ptr[T any](v T) *T { return &v }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// sameJSON asserts that two values encode to the same JSON. Decimal and time
// values compare by meaning rather than by internal representation.
func sameJSON(t *testing.T, want, got any, msgAndArgs ...any) {
	t.Helper()
	w, err := json.Marshal(want)
	require.NoError(t, err)
	g, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(w), string(g), msgAndArgs...)
}

func ids[T any](rows []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, id(r))
	}
	return out
}

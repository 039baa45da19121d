package storage

import (
	"time"

	"github.com/warp/portal/model"
)

// Clock supplies the instant stamped on created rows. Adapters take one as an
// option so tests get deterministic createdAt values.
type Clock func() time.Time

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Now returns the current instant in UTC at microsecond precision, the finest
// resolution every backend stores. A nil Clock reads the system clock.
func (c Clock) Now() time.Time {
	if c == nil {
		return NormalizeTime(time.Now())
	}
	return NormalizeTime(c())
}

// Today returns the calendar date of Now.
func (c Clock) Today() model.Date {
	return model.DateOf(c.Now())
}

// NormalizeTime converts t to UTC microseconds and drops the monotonic reading.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func normalizeTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	n := NormalizeTime(*t)
	return &n
}

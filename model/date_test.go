package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)

	for _, bad := range []string{"2023-02-29", "29/02/2024", "2024-2-9", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	start := NewDate(2024, time.February, 27)

	assert.Equal(t, NewDate(2024, time.March, 1), start.AddDays(3))
	assert.Equal(t, NewDate(2023, time.December, 31), NewDate(2024, time.January, 1).AddDays(-1))

	// inclusive of both ends, across the leap day
	assert.Equal(t, 4, start.DaysUntil(NewDate(2024, time.March, 1)))
	assert.Equal(t, 1, start.DaysUntil(start))

	assert.True(t, start.Before(start.AddDays(1)))
	assert.True(t, start.AddDays(1).After(start))
	assert.False(t, start.Before(start))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Day  Date  `json:"day"`
		Opt  *Date `json:"opt,omitempty"`
		Zero Date  `json:"zero"`
	}

	// GIVEN: a date and a zero date
	b, err := json.Marshal(payload{Day: NewDate(2025, time.March, 14)})
	require.NoError(t, err)

	// THEN: dates are plain strings and zero is null
	assert.JSONEq(t, `{"day":"2025-03-14","zero":null}`, string(b))

	tests := []struct {
		in   string
		want Date
	}{
		{`"2025-03-14"`, NewDate(2025, time.March, 14)},
		{`"2025-03-14T23:30:00Z"`, NewDate(2025, time.March, 14)},
		{`""`, Date{}},
		{`null`, Date{}},
	}
	for _, tt := range tests {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(tt.in), &d), tt.in)
		assert.Equal(t, tt.want, d, tt.in)
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`20250314`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"14.03.2025"`), &d))
}

func TestDate_SQL(t *testing.T) {
	v, err := NewDate(2025, time.March, 14).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	tests := []struct {
		src  any
		want Date
	}{
		{"2025-03-14", NewDate(2025, time.March, 14)},
		{[]byte("2025-03-14 00:00:00"), NewDate(2025, time.March, 14)},
		{time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), NewDate(2025, time.March, 14)},
		{nil, Date{}},
	}
	for _, tt := range tests {
		var d Date
		require.NoError(t, d.Scan(tt.src))
		assert.Equal(t, tt.want, d)
	}

	var d Date
	assert.Error(t, d.Scan(20250314))
}

func TestRating(t *testing.T) {
	tests := []struct {
		stars float64
		want  Rating
		str   string
	}{
		{4.5, 45, "4.5"},
		{3.8, 38, "3.8"},
		{5, 50, "5.0"},
		{0, 0, "0.0"},
	}
	for _, tt := range tests {
		r := RatingFromStars(tt.stars)
		assert.Equal(t, tt.want, r)
		assert.Equal(t, tt.str, r.String())
		assert.InDelta(t, tt.stars, r.Stars(), 1e-9)
	}
}

func TestEmployee_FullName(t *testing.T) {
	e := Employee{FirstName: "Layla", LastName: "Hassan"}
	assert.Equal(t, "Layla Hassan", e.FullName())
}

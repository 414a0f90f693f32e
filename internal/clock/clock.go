// Package clock provides calendar-day keys in the app's single reference
// timezone. Streak computation, daily-stat bucketing, and task freshness all
// go through this package; mixing timezones anywhere would silently corrupt
// streaks.
package clock

import (
	"fmt"
	"time"
)

// ReferenceTimezone is the one timezone used for every date key
const ReferenceTimezone = "America/Toronto"

// dateKeyLayout is ISO YYYY-MM-DD
const dateKeyLayout = "2006-01-02"

// Clock produces date keys in the reference timezone
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New loads the reference timezone and returns a wall-clock backed Clock
func New() (*Clock, error) {
	return NewWithNow(time.Now)
}

// NewWithNow returns a Clock with an injectable time source, for tests
func NewWithNow(now func() time.Time) (*Clock, error) {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone: %w", err)
	}
	return &Clock{loc: loc, now: now}, nil
}

// Now returns the current instant from the clock's time source
func (c *Clock) Now() time.Time {
	return c.now()
}

// KeyFor returns the date key of the given instant in the reference timezone
func (c *Clock) KeyFor(t time.Time) string {
	return t.In(c.loc).Format(dateKeyLayout)
}

// TodayKey returns today's date key
func (c *Clock) TodayKey() string {
	return c.KeyFor(c.now())
}

// KeyOffset returns the date key offset by the given number of calendar days.
// The arithmetic runs on the parsed date, not on an instant, so DST
// transitions cannot skip or repeat a day.
func KeyOffset(dateKey string, days int) (string, error) {
	t, err := time.Parse(dateKeyLayout, dateKey)
	if err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}
	return t.AddDate(0, 0, days).Format(dateKeyLayout), nil
}

// YesterdayKey returns the date key of the calendar day before today
func (c *Clock) YesterdayKey() string {
	key, err := KeyOffset(c.TodayKey(), -1)
	if err != nil {
		// TodayKey always produces a valid key
		panic(err)
	}
	return key
}

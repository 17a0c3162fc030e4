// Package clock supplies the run timestamp in a fixed civil time zone.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host's zoneinfo
)

// Layouts used for the display stamp and the history file key.
const (
	DisplayLayout = "2006-01-02 15:04:05 MST"
	DayKeyLayout  = "2006-01-02"

	// DefaultTimezone is the zone every published timestamp is expressed in.
	DefaultTimezone = "Asia/Shanghai"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Zoned is a wall clock pinned to one location.
type Zoned struct {
	loc *time.Location
	now func() time.Time
}

// New returns a wall clock for the named IANA zone.
func New(timezone string) (*Zoned, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	return &Zoned{loc: loc, now: time.Now}, nil
}

// Now returns the current time in the clock's location.
func (z *Zoned) Now() time.Time {
	return z.now().In(z.loc)
}

// Location returns the clock's zone.
func (z *Zoned) Location() *time.Location {
	return z.loc
}

// Fixed always reports the same instant.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Display formats t for the rendered documents.
func Display(t time.Time) string {
	return t.Format(DisplayLayout)
}

// DayKey formats t as the calendar day used to name history snapshots.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

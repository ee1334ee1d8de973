package service

import (
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// Clock returns the current instant. Services truncate it to whole seconds
// in UTC, the resolution at which instants are stored.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// StaticSettings serves a fixed settings value.
type StaticSettings domain.Settings

func (s StaticSettings) Settings() domain.Settings { return domain.Settings(s) }

package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Clock returns the current instant. Callers convert to the salon zone
// through Civil / Today, never through the host's local zone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(tz string) SystemClock {
	return SystemClock{loc: Location(tz)}
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c SystemClock) Location() *time.Location {
	return c.loc
}

// FixedClock always reports the same instant, already in its zone.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// CivilTime is a wall-clock reading in the salon zone, minute resolution.
type CivilTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

func (c CivilTime) Date() string {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

func CivilIn(t time.Time, loc *time.Location) CivilTime {
	t = t.In(loc)
	return CivilTime{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Civil reads clock in the zone of its own instant.
func Civil(clock Clock) CivilTime {
	now := clock.Now()
	return CivilIn(now, now.Location())
}

func Today(clock Clock) string {
	return Civil(clock).Date()
}

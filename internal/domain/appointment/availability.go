package appointment

import (
	"iter"
	"strconv"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	Date string
}

// AvailableSlots yields, in catalog order, the slots still offerable on date.
//
// On today's date a slot must start strictly after now; a slot at the current
// minute is already gone. Any date other than today only goes through the
// occupancy check, including past dates.
func AvailableSlots(
	date string,
	now timezone.CivilTime,
	catalog []string,
	appointments []models.Appointment,
) iter.Seq[string] {

	isToday := date == now.Date()

	return func(yield func(string) bool) {
		for _, slot := range catalog {
			if isToday {
				h, m, ok := splitHM(slot)
				if !ok {
					continue
				}
				if h < now.Hour || (h == now.Hour && m <= now.Minute) {
					continue
				}
			}

			if Occupied(appointments, date, slot) {
				continue
			}

			if !yield(slot) {
				return
			}
		}
	}
}

// Occupied reports whether a non-cancelled appointment holds date+time.
func Occupied(appointments []models.Appointment, date, time string) bool {
	for _, ap := range appointments {
		if ap.Occupies(date, time) {
			return true
		}
	}
	return false
}

func splitHM(hm string) (int, int, bool) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hm[:2])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(hm[3:])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

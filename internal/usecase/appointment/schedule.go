package appointment

import (
	"context"
	"errors"
	"slices"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
	"github.com/BruksfildServices01/braids-scheduler/internal/validators"
)

// Schedule bundles what every booking path needs: the state, the salon
// clock, the slot catalog and the per-slot lock.
type Schedule struct {
	Repo   domain.Repository
	Clock  timezone.Clock
	Slots  []string
	Locker slotlock.Locker
	Audit  *audit.Dispatcher
}

func (s Schedule) catalog() []string {
	if len(s.Slots) == 0 {
		return domain.DefaultSlots
	}
	return s.Slots
}

func (s Schedule) isOffered(hm string) bool {
	return slices.Contains(s.catalog(), hm)
}

func checkDateTime(date, hm string) error {
	if !validators.IsDate(date) || !validators.IsTimeOfDay(hm) {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	return nil
}

// lockSlot holds the slot for the rest of the booking. A context that ends
// while waiting is reported as slot_busy.
func (s Schedule) lockSlot(ctx context.Context, date, hm string) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}

	unlock, err := s.Locker.Lock(ctx, slotlock.Key(date, hm))
	if errors.Is(err, slotlock.ErrBusy) {
		return nil, httperr.ErrBusiness("slot_busy")
	}
	if err != nil {
		return nil, err
	}
	return unlock, nil
}

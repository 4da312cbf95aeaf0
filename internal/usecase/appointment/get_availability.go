package appointment

import (
	"context"
	"slices"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
	"github.com/BruksfildServices01/braids-scheduler/internal/validators"
)

type AvailabilityOutput struct {
	Date  string   `json:"date"`
	Today string   `json:"today"`
	Slots []string `json:"slots"`
}

type GetAvailability struct {
	schedule Schedule
}

func NewGetAvailability(schedule Schedule) *GetAvailability {
	return &GetAvailability{schedule: schedule}
}

// Execute lists the slots a client can still pick on in.Date. An empty
// date means today.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*AvailabilityOutput, error) {

	now := timezone.Civil(uc.schedule.Clock)
	today := now.Date()

	date := in.Date
	if date == "" {
		date = today
	}
	if !validators.IsDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if date < today {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	out := &AvailabilityOutput{
		Date:  date,
		Today: today,
	}

	err := uc.schedule.Repo.View(ctx, func(st *state.State) error {
		out.Slots = slices.Collect(domain.AvailableSlots(
			date,
			now,
			uc.schedule.catalog(),
			st.AppointmentsOn(date),
		))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Slots == nil {
		out.Slots = []string{}
	}
	return out, nil
}

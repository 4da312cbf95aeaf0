package appointment

import (
	"context"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

// CancelAppointment frees the slot. The income record created with the
// appointment stays in the books.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var out models.Appointment

	err := uc.repo.Update(ctx, func(st *state.State) error {
		ap := st.Appointment(appointmentID)
		if ap == nil {
			return httperr.ErrBusiness("appointment_not_found")
		}
		if err := domain.Cancel(ap); err != nil {
			return err
		}
		out = *ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: out.ID,
	})

	return &out, nil
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var out models.Appointment

	err := uc.repo.Update(ctx, func(st *state.State) error {
		ap := st.Appointment(appointmentID)
		if ap == nil {
			return httperr.ErrBusiness("appointment_not_found")
		}
		if err := domain.Complete(ap); err != nil {
			return err
		}
		out = *ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: out.ID,
	})

	return &out, nil
}

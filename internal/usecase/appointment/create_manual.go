package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

// CreateManualAppointmentInput is filled by the admin. Price and Duration
// default to the technique table when nil or zero.
type CreateManualAppointmentInput struct {
	ClientID string
	Date     string
	Time     string
	Type     models.ServiceType
	Price    *decimal.Decimal
	Duration *int
}

type CreateManualAppointment struct {
	schedule Schedule
}

func NewCreateManualAppointment(schedule Schedule) *CreateManualAppointment {
	return &CreateManualAppointment{schedule: schedule}
}

func (uc *CreateManualAppointment) Execute(
	ctx context.Context,
	in CreateManualAppointmentInput,
) (*models.Appointment, error) {

	if err := checkDateTime(in.Date, in.Time); err != nil {
		return nil, err
	}

	tech, ok := domain.LookupTechnique(in.Type)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_service_type")
	}

	// zero means "not filled in", same as nil
	price := tech.Price
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		if !in.Price.IsZero() {
			price = *in.Price
		}
	}

	duration := tech.DurationMin
	if in.Duration != nil {
		if *in.Duration < 0 {
			return nil, httperr.ErrBusiness("invalid_duration")
		}
		if *in.Duration > 0 {
			duration = *in.Duration
		}
	}

	unlock, err := uc.schedule.lockSlot(ctx, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var created models.Appointment

	err = uc.schedule.Repo.Update(ctx, func(st *state.State) error {
		client := st.Client(in.ClientID)
		if client == nil {
			return httperr.ErrBusiness("client_not_found")
		}

		if domain.Occupied(st.Appointments, in.Date, in.Time) {
			return httperr.ErrBusiness("time_conflict")
		}

		created = models.Appointment{
			ID:       uuid.NewString(),
			ClientID: client.ID,
			Date:     in.Date,
			Time:     in.Time,
			Type:     tech.Type,
			Status:   domain.InitialStatus(),
			Price:    price,
			Duration: duration,
		}

		st.Appointments = append(st.Appointments, created)
		st.Finances = append(st.Finances, models.FinancialRecord{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("Agendamento Manual (%s) - %s", tech.Type, client.Name),
			Amount:      price,
			Type:        models.FinancialIncome,
			Date:        in.Date,
			Category:    models.CategoryService,
		})
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			uc.schedule.Audit.Dispatch(audit.Event{
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"date":   in.Date,
					"time":   in.Time,
					"source": "manual",
				},
			})
		}
		return nil, err
	}

	uc.schedule.Audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: created.ID,
	})

	return &created, nil
}

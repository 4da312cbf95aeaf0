package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateOnlineBookingInput struct {
	Name  string
	Email string
	Phone string
	Date  string
	Time  string
}

type OnlineBooking struct {
	Appointment models.Appointment
	Client      models.Client
	NewClient   bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateOnlineBooking struct {
	schedule Schedule
}

func NewCreateOnlineBooking(schedule Schedule) *CreateOnlineBooking {
	return &CreateOnlineBooking{schedule: schedule}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateOnlineBooking) Execute(
	ctx context.Context,
	in CreateOnlineBookingInput,
) (*OnlineBooking, error) {

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, httperr.ErrBusiness("invalid_client_data")
	}

	// --------------------------------------------------
	// 1️⃣ Data / hora
	// --------------------------------------------------
	if err := checkDateTime(in.Date, in.Time); err != nil {
		return nil, err
	}
	if in.Date < timezone.Today(uc.schedule.Clock) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// 2️⃣ Trava do horário
	// --------------------------------------------------
	unlock, err := uc.schedule.lockSlot(ctx, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var out OnlineBooking

	err = uc.schedule.Repo.Update(ctx, func(st *state.State) error {

		// --------------------------------------------------
		// 3️⃣ Disponibilidade, reavaliada dentro da transação
		// --------------------------------------------------
		if !uc.schedule.isOffered(in.Time) {
			return httperr.ErrBusiness("slot_unavailable")
		}
		if domain.Occupied(st.Appointments, in.Date, in.Time) {
			return httperr.ErrBusiness("time_conflict")
		}
		now := timezone.Civil(uc.schedule.Clock)
		if !stillOffered(in.Date, in.Time, now, uc.schedule.catalog()) {
			return httperr.ErrBusiness("slot_unavailable")
		}

		// --------------------------------------------------
		// 4️⃣ Cliente (get or create)
		// --------------------------------------------------
		client := st.ClientByEmail(email)
		if client == nil {
			st.Clients = append(st.Clients, models.Client{
				ID:             uuid.NewString(),
				Name:           name,
				Address:        models.PlaceholderAddress,
				Phone:          strings.TrimSpace(in.Phone),
				Email:          email,
				Status:         models.ClientPending,
				TreatmentStage: models.StageFirstContact,
			})
			client = &st.Clients[len(st.Clients)-1]
			out.NewClient = true
		}
		out.Client = *client

		// --------------------------------------------------
		// 5️⃣ Agendamento + lançamento financeiro
		// --------------------------------------------------
		settings := st.Settings

		ap := models.Appointment{
			ID:       uuid.NewString(),
			ClientID: client.ID,
			Date:     in.Date,
			Time:     in.Time,
			Type:     domain.OnlineServiceType,
			Status:   domain.InitialStatus(),
			Price:    settings.DefaultPrice,
			Duration: settings.DefaultDuration,
		}

		st.Appointments = append(st.Appointments, ap)
		st.Finances = append(st.Finances, models.FinancialRecord{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("Agendamento Online - %s", name),
			Amount:      ap.Price,
			Type:        models.FinancialIncome,
			Date:        ap.Date,
			Category:    models.CategoryService,
		})

		out.Appointment = ap
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
					"source": "online",
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	uc.schedule.Audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "appointment",
		EntityID: out.Appointment.ID,
		Metadata: map[string]any{
			"client_id":  out.Client.ID,
			"new_client": out.NewClient,
		},
	})

	return &out, nil
}

// stillOffered applies the clock rule of the availability filter to a
// single slot.
func stillOffered(date, hm string, now timezone.CivilTime, catalog []string) bool {
	for slot := range domain.AvailableSlots(date, now, catalog, nil) {
		if slot == hm {
			return true
		}
	}
	return false
}

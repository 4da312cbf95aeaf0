package appointment

import (
	"context"
	"slices"
	"strings"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/dto"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/validators"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute returns the day's appointments ordered by time, cancelled ones
// included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if !validators.IsDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return listWhere(ctx, uc.repo, func(ap models.Appointment) bool {
		return ap.Date == date
	})
}

func listWhere(
	ctx context.Context,
	repo domain.Repository,
	keep func(models.Appointment) bool,
) ([]dto.AppointmentListDTO, error) {

	out := []dto.AppointmentListDTO{}

	err := repo.View(ctx, func(st *state.State) error {
		for _, ap := range st.Appointments {
			if !keep(ap) {
				continue
			}

			var clientName string
			if c := st.Client(ap.ClientID); c != nil {
				clientName = c.Name
			}

			out = append(out, dto.AppointmentListDTO{
				ID:         ap.ID,
				Date:       ap.Date,
				Time:       ap.Time,
				Type:       ap.Type,
				Status:     ap.Status,
				Price:      ap.Price,
				Duration:   ap.Duration,
				ClientID:   ap.ClientID,
				ClientName: clientName,
				HasReport:  st.ReportFor(ap.ID) != nil,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b dto.AppointmentListDTO) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})
	return out, nil
}

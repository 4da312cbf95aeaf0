package appointment

import (
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current models.AppointmentStatus) error {
	if current != models.AppointmentScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current models.AppointmentStatus) error {
	if current != models.AppointmentScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() models.AppointmentStatus {
	return models.AppointmentScheduled
}

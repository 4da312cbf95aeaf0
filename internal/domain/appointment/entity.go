package appointment

import "github.com/BruksfildServices01/braids-scheduler/internal/models"

// Complete and Cancel change the status field only. The paired financial
// record is left as it was.

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(ap.Status); err != nil {
		return err
	}

	ap.Status = models.AppointmentCancelled
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(ap.Status); err != nil {
		return err
	}

	ap.Status = models.AppointmentCompleted
	return nil
}

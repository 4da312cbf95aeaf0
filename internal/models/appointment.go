package models

import "github.com/shopspring/decimal"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment date and time carry no zone; both are read in the salon's
// civil timezone.
type Appointment struct {
	ID       string            `json:"id"`
	ClientID string            `json:"clientId"`
	Date     string            `json:"date"`
	Time     string            `json:"time"`
	Type     ServiceType       `json:"type"`
	Status   AppointmentStatus `json:"status"`
	Price    decimal.Decimal   `json:"price"`
	Duration int               `json:"duration"`
}

func (a Appointment) Occupies(date, time string) bool {
	return a.Status != AppointmentCancelled && a.Date == date && a.Time == time
}

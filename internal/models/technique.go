package models

import "github.com/shopspring/decimal"

type ServiceType string

const (
	ServiceBoxBraids ServiceType = "Box Braids"
	ServiceNago      ServiceType = "Nagô"
	ServiceTwist     ServiceType = "Twist"
	ServiceEntrelace ServiceType = "Entrelace"
	ServicePenteado  ServiceType = "Penteado"
)

// Technique is one row of the static menu used to pre-fill manual bookings.
type Technique struct {
	Type        ServiceType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"duration"`
}

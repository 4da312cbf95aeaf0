package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID         string                   `json:"id"`
	Date       string                   `json:"date"`
	Time       string                   `json:"time"`
	Type       models.ServiceType       `json:"type"`
	Status     models.AppointmentStatus `json:"status"`
	Price      decimal.Decimal          `json:"price"`
	Duration   int                      `json:"duration"`
	ClientID   string                   `json:"clientId"`
	ClientName string                   `json:"clientName"`
	HasReport  bool                     `json:"hasReport"`
}

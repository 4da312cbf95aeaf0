package models

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPending  ClientStatus = "pending"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientPending:
		return true
	}
	return false
}

type TreatmentStage string

const (
	StageFirstContact TreatmentStage = "First Contact"
	StageMeasurement  TreatmentStage = "Measurement"
	StageRegular      TreatmentStage = "Regular"
	StagePostCare     TreatmentStage = "Post-care"
)

func (s TreatmentStage) Valid() bool {
	switch s {
	case StageFirstContact, StageMeasurement, StageRegular, StagePostCare:
		return true
	}
	return false
}

// PlaceholderAddress is stored for clients created by the public booking page.
const PlaceholderAddress = "A combinar"

// Client has no login; created on first booking or by the admin, never deleted.
type Client struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Address         string         `json:"address"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email"`
	Status          ClientStatus   `json:"status"`
	LastSessionDate *string        `json:"lastSessionDate,omitempty"`
	TreatmentStage  TreatmentStage `json:"treatmentStage"`

	// LastNudgedDate is the day the last retention message was queued.
	LastNudgedDate *string `json:"lastNudgedDate,omitempty"`
}

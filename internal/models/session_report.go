package models

// SessionReport is keyed by appointment: ID always equals AppointmentID.
type SessionReport struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	Observations  string `json:"observations"`
	Evolution     string `json:"evolution"`
	Conduct       string `json:"conduct"`
}

func ReportContent(observations, evolution, conduct string) string {
	return observations + "\n" + evolution + "\n" + conduct
}

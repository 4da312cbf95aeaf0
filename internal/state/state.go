package state

import (
	"slices"
	"strings"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

// State is the whole aggregate of the studio. Collections keep insertion order.
type State struct {
	Clients        []models.Client
	Appointments   []models.Appointment
	SessionReports []models.SessionReport
	Finances       []models.FinancialRecord
	KanbanTasks    []models.KanbanTask
	Settings       models.GlobalSettings
}

func Empty() State {
	return State{Settings: models.DefaultSettings()}
}

func (s *State) clone() State {
	return State{
		Clients:        slices.Clone(s.Clients),
		Appointments:   slices.Clone(s.Appointments),
		SessionReports: slices.Clone(s.SessionReports),
		Finances:       slices.Clone(s.Finances),
		KanbanTasks:    slices.Clone(s.KanbanTasks),
		Settings:       s.Settings,
	}
}

// -------- Clients --------

func (s *State) Client(id string) *models.Client {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i]
		}
	}
	return nil
}

// ClientByEmail matches case-insensitively.
func (s *State) ClientByEmail(email string) *models.Client {
	for i := range s.Clients {
		if strings.EqualFold(s.Clients[i].Email, email) {
			return &s.Clients[i]
		}
	}
	return nil
}

// -------- Appointments --------

func (s *State) Appointment(id string) *models.Appointment {
	for i := range s.Appointments {
		if s.Appointments[i].ID == id {
			return &s.Appointments[i]
		}
	}
	return nil
}

func (s *State) AppointmentsOn(date string) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.Appointments {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	return out
}

// -------- Session reports --------

func (s *State) ReportFor(appointmentID string) *models.SessionReport {
	for i := range s.SessionReports {
		if s.SessionReports[i].AppointmentID == appointmentID {
			return &s.SessionReports[i]
		}
	}
	return nil
}

// UpsertReport keeps at most one report per appointment; a replaced report
// moves to the end, as a fresh save does.
func (s *State) UpsertReport(r models.SessionReport) {
	s.SessionReports = slices.DeleteFunc(s.SessionReports, func(old models.SessionReport) bool {
		return old.AppointmentID == r.AppointmentID
	})
	s.SessionReports = append(s.SessionReports, r)
}

// -------- Kanban --------

func (s *State) Task(id string) *models.KanbanTask {
	for i := range s.KanbanTasks {
		if s.KanbanTasks[i].ID == id {
			return &s.KanbanTasks[i]
		}
	}
	return nil
}

func (s *State) DeleteTask(id string) bool {
	n := len(s.KanbanTasks)
	s.KanbanTasks = slices.DeleteFunc(s.KanbanTasks, func(t models.KanbanTask) bool {
		return t.ID == id
	})
	return len(s.KanbanTasks) != n
}

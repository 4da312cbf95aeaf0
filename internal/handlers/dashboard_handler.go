package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

type DashboardHandler struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewDashboardHandler(repo domain.Repository, clock timezone.Clock) *DashboardHandler {
	return &DashboardHandler{repo: repo, clock: clock}
}

type Dashboard struct {
	Today             string                    `json:"today"`
	TodayAppointments []models.Appointment      `json:"todayAppointments"`
	Upcoming          int                       `json:"upcoming"`
	ActiveClients     int                       `json:"activeClients"`
	PendingClients    int                       `json:"pendingClients"`
	Month             FinanceSummary            `json:"month"`
	Tasks             map[models.TaskStatus]int `json:"tasks"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	today := timezone.Today(h.clock)

	out := Dashboard{
		Today:             today,
		TodayAppointments: []models.Appointment{},
		Tasks: map[models.TaskStatus]int{
			models.TaskTodo:  0,
			models.TaskDoing: 0,
			models.TaskDone:  0,
		},
	}

	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		for _, ap := range st.Appointments {
			if ap.Status != models.AppointmentScheduled {
				continue
			}
			switch {
			case ap.Date == today:
				out.TodayAppointments = append(out.TodayAppointments, ap)
			case ap.Date > today:
				out.Upcoming++
			}
		}

		for _, cl := range st.Clients {
			switch cl.Status {
			case models.ClientActive:
				out.ActiveClients++
			case models.ClientPending:
				out.PendingClients++
			}
		}

		out.Month = Summarize(st.Finances, today[:7])

		for _, t := range st.KanbanTasks {
			out.Tasks[t.Status]++
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

// ReportHandler keeps one session report per appointment.
type ReportHandler struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewReportHandler(repo domain.Repository, clock timezone.Clock, audit *audit.Dispatcher) *ReportHandler {
	return &ReportHandler{repo: repo, clock: clock, audit: audit}
}

type SaveReportRequest struct {
	Observations string `json:"observations"`
	Evolution    string `json:"evolution"`
	Conduct      string `json:"conduct"`
}

func (h *ReportHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var out models.SessionReport
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		if st.Appointment(id) == nil {
			return httperr.ErrBusiness("appointment_not_found")
		}
		r := st.ReportFor(id)
		if r == nil {
			return httperr.ErrBusiness("report_not_found")
		}
		out = *r
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// Save replaces any previous report of the appointment.
func (h *ReportHandler) Save(c *gin.Context) {
	id := c.Param("id")

	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	var out models.SessionReport
	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		ap := st.Appointment(id)
		if ap == nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		out = models.SessionReport{
			ID:            ap.ID,
			AppointmentID: ap.ID,
			ClientID:      ap.ClientID,
			Content:       models.ReportContent(req.Observations, req.Evolution, req.Conduct),
			Date:          h.clock.Now().UTC().Format(time.RFC3339),
			Observations:  req.Observations,
			Evolution:     req.Evolution,
			Conduct:       req.Conduct,
		}
		st.UpsertReport(out)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "report_saved", Entity: "session_report", EntityID: id})
	httpresp.OK(c, out)
}

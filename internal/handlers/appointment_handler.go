package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointment.CreateManualAppointment
	complete *appointment.CompleteAppointment
	cancel   *appointment.CancelAppointment
	byDate   *appointment.ListAppointmentsByDate
	byMonth  *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *appointment.CreateManualAppointment,
	complete *appointment.CompleteAppointment,
	cancel *appointment.CancelAppointment,
	byDate *appointment.ListAppointmentsByDate,
	byMonth *appointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		complete: complete,
		cancel:   cancel,
		byDate:   byDate,
		byMonth:  byMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID string             `json:"clientId" binding:"required"`
	Date     string             `json:"date" binding:"required"`
	Time     string             `json:"time" binding:"required"`
	Type     models.ServiceType `json:"type" binding:"required"`
	Price    *decimal.Decimal   `json:"price"`
	Duration *int               `json:"duration"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateManualAppointmentInput{
		ClientID: req.ClientID,
		Date:     req.Date,
		Time:     req.Time,
		Type:     req.Type,
		Price:    req.Price,
		Duration: req.Duration,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	aps, err := h.byDate.Execute(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", messages["invalid_year"])
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", messages["invalid_month"])
		return
	}

	aps, err := h.byMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// Techniques pre-fills the manual booking form.
func (h *AppointmentHandler) Techniques(c *gin.Context) {
	httpresp.List(c, domain.Techniques())
}

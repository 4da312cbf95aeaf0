package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/messaging"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *appointment.GetAvailability
	booking      *appointment.CreateOnlineBooking
	messages     *messaging.Resilient
	outbox       *messaging.Outbox
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	booking *appointment.CreateOnlineBooking,
	messages *messaging.Resilient,
	outbox *messaging.Outbox,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		booking:      booking,
		messages:     messages,
		outbox:       outbox,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
}

type PublicBookingResponse struct {
	Appointment models.Appointment `json:"appointment"`
	Message     string             `json:"message"`
}

////////////////////////////////////////////////////////
// TECHNIQUES
////////////////////////////////////////////////////////

func (h *PublicHandler) Techniques(c *gin.Context) {
	httpresp.List(c, domain.Techniques())
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	out, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{Date: c.Query("date")},
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

// Book runs the booking transaction, then writes the confirmation text.
// The text is best effort: it never fails the request.
func (h *PublicHandler) Book(c *gin.Context) {
	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.booking.Execute(c.Request.Context(), appointment.CreateOnlineBookingInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Date:  req.Date,
		Time:  req.Time,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	msg := h.messages.Confirmation(
		c.Request.Context(),
		req.Name,
		res.Appointment.Date,
		res.Appointment.Time,
	)

	phone := res.Client.Phone
	if phone == "" {
		phone = req.Phone
	}
	h.outbox.Enqueue(messaging.Message{
		Kind: "confirmation",
		To:   phone,
		Body: msg,
	})

	c.JSON(http.StatusCreated, PublicBookingResponse{
		Appointment: res.Appointment,
		Message:     msg,
	})
}

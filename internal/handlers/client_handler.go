package handlers

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/messaging"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/validators"
)

type ClientHandler struct {
	repo     domain.Repository
	messages *messaging.Resilient
	audit    *audit.Dispatcher
}

func NewClientHandler(
	repo domain.Repository,
	messages *messaging.Resilient,
	audit *audit.Dispatcher,
) *ClientHandler {
	return &ClientHandler{
		repo:     repo,
		messages: messages,
		audit:    audit,
	}
}

type ClientListItem struct {
	models.Client
	LastAppointmentDate string `json:"lastAppointmentDate,omitempty"`
}

type CreateClientRequest struct {
	Name            string                `json:"name" binding:"required"`
	Address         string                `json:"address"`
	Phone           string                `json:"phone"`
	Email           string                `json:"email" binding:"omitempty,email"`
	Status          models.ClientStatus   `json:"status"`
	TreatmentStage  models.TreatmentStage `json:"treatmentStage"`
	LastSessionDate *string               `json:"lastSessionDate"`
}

// UpdateClientRequest only touches the fields present in the body. An empty
// lastSessionDate clears it.
type UpdateClientRequest struct {
	Name            *string                `json:"name"`
	Address         *string                `json:"address"`
	Phone           *string                `json:"phone"`
	Email           *string                `json:"email"`
	Status          *models.ClientStatus   `json:"status"`
	TreatmentStage  *models.TreatmentStage `json:"treatmentStage"`
	LastSessionDate *string                `json:"lastSessionDate"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List filters by ?query= (name, phone or e-mail) and ?status=, most
// recently seen clients first.
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := models.ClientStatus(c.Query("status"))

	var out []ClientListItem

	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		last := make(map[string]string, len(st.Clients))
		for _, ap := range st.Appointments {
			if ap.Date > last[ap.ClientID] {
				last[ap.ClientID] = ap.Date
			}
		}

		for _, cl := range st.Clients {
			if status != "" && cl.Status != status {
				continue
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(cl.Name), query) &&
				!strings.Contains(cl.Phone, query) &&
				!strings.Contains(strings.ToLower(cl.Email), query) {
				continue
			}
			out = append(out, ClientListItem{Client: cl, LastAppointmentDate: last[cl.ID]})
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	slices.SortStableFunc(out, func(a, b ClientListItem) int {
		return strings.Compare(b.LastAppointmentDate, a.LastAppointmentDate)
	})

	httpresp.List(c, out)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var out models.Client
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		cl := st.Client(id)
		if cl == nil {
			return httperr.ErrBusiness("client_not_found")
		}
		out = *cl
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	cl := models.Client{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(req.Name),
		Address:         req.Address,
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		Status:          req.Status,
		TreatmentStage:  req.TreatmentStage,
		LastSessionDate: req.LastSessionDate,
	}
	if cl.Status == "" {
		cl.Status = models.ClientActive
	}
	if cl.TreatmentStage == "" {
		cl.TreatmentStage = models.StageFirstContact
	}
	if err := checkClient(&cl); err != nil {
		writeError(c, err)
		return
	}

	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		if cl.Email != "" && st.ClientByEmail(cl.Email) != nil {
			return httperr.ErrBusiness("email_already_exists")
		}
		st.Clients = append(st.Clients, cl)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "client_created", Entity: "client", EntityID: cl.ID})
	httpresp.Created(c, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	var out models.Client
	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		cl := st.Client(id)
		if cl == nil {
			return httperr.ErrBusiness("client_not_found")
		}

		next := *cl
		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
		}
		if req.Address != nil {
			next.Address = *req.Address
		}
		if req.Phone != nil {
			next.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Email != nil {
			next.Email = strings.TrimSpace(*req.Email)
			if other := st.ClientByEmail(next.Email); next.Email != "" && other != nil && other.ID != id {
				return httperr.ErrBusiness("email_already_exists")
			}
		}
		if req.Status != nil {
			next.Status = *req.Status
		}
		if req.TreatmentStage != nil {
			next.TreatmentStage = *req.TreatmentStage
		}
		if req.LastSessionDate != nil {
			if *req.LastSessionDate == "" {
				next.LastSessionDate = nil
			} else {
				d := *req.LastSessionDate
				next.LastSessionDate = &d
			}
		}

		if err := checkClient(&next); err != nil {
			return err
		}

		*cl = next
		out = next
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "client_updated", Entity: "client", EntityID: id})
	httpresp.OK(c, out)
}

func checkClient(cl *models.Client) error {
	if cl.Name == "" {
		return httperr.ErrBusiness("invalid_client_data")
	}
	if !cl.Status.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if !cl.TreatmentStage.Valid() {
		return httperr.ErrBusiness("invalid_stage")
	}
	if cl.LastSessionDate != nil && !validators.IsDate(*cl.LastSessionDate) {
		return httperr.ErrBusiness("invalid_date")
	}
	return nil
}

// ======================================================
// HISTORY / RETENTION
// ======================================================

func (h *ClientHandler) Reports(c *gin.Context) {
	id := c.Param("id")

	var out []models.SessionReport
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		if st.Client(id) == nil {
			return httperr.ErrBusiness("client_not_found")
		}
		for _, r := range st.SessionReports {
			if r.ClientID == id {
				out = append(out, r)
			}
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

// RetentionMessage drafts a "come back" text for the client. It always
// answers, falling back to the fixed template.
func (h *ClientHandler) RetentionMessage(c *gin.Context) {
	id := c.Param("id")

	var cl models.Client
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		found := st.Client(id)
		if found == nil {
			return httperr.ErrBusiness("client_not_found")
		}
		cl = *found
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"clientId": cl.ID,
		"message":  h.messages.Retention(c.Request.Context(), cl.Name, cl.LastSessionDate),
	})
}

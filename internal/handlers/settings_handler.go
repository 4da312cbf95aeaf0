package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/braids-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

type SettingsHandler struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSettingsHandler(repo domain.Repository, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{repo: repo, audit: audit}
}

type UpdateSettingsRequest struct {
	DefaultPrice    *decimal.Decimal `json:"defaultPrice"`
	DefaultDuration *int             `json:"defaultDuration"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	var out models.GlobalSettings
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		out = st.Settings
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// Update changes the price and duration used by later online bookings;
// existing appointments keep theirs.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if req.DefaultPrice != nil && req.DefaultPrice.IsNegative() {
		writeError(c, httperr.ErrBusiness("invalid_settings"))
		return
	}
	if req.DefaultDuration != nil && *req.DefaultDuration <= 0 {
		writeError(c, httperr.ErrBusiness("invalid_settings"))
		return
	}

	var out models.GlobalSettings
	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		if req.DefaultPrice != nil {
			st.Settings.DefaultPrice = *req.DefaultPrice
		}
		if req.DefaultDuration != nil {
			st.Settings.DefaultDuration = *req.DefaultDuration
		}
		out = st.Settings
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{Action: "settings_updated", Entity: "settings", Metadata: out})
	httpresp.OK(c, out)
}

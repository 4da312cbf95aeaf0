package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/validators"
)

type FinanceHandler struct {
	repo domain.Repository
}

func NewFinanceHandler(repo domain.Repository) *FinanceHandler {
	return &FinanceHandler{repo: repo}
}

type CreateFinancialRecordRequest struct {
	Description string               `json:"description" binding:"required"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        models.FinancialType `json:"type" binding:"required"`
	Date        string               `json:"date" binding:"required"`
	Category    string               `json:"category"`
}

type FinanceSummary struct {
	Month   string          `json:"month,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// Summarize totals records, optionally restricted to a YYYY-MM month.
func Summarize(records []models.FinancialRecord, month string) FinanceSummary {
	s := FinanceSummary{Month: month}
	for _, r := range records {
		if month != "" && !strings.HasPrefix(r.Date, month) {
			continue
		}
		switch r.Type {
		case models.FinancialIncome:
			s.Income = s.Income.Add(r.Amount)
		case models.FinancialExpense:
			s.Expense = s.Expense.Add(r.Amount)
		}
		s.Count++
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

func monthParam(c *gin.Context) (string, bool) {
	month := c.Query("month")
	if month != "" && !validators.IsMonth(month) {
		httperr.BadRequest(c, "invalid_month", messages["invalid_month"])
		return "", false
	}
	return month, true
}

func (h *FinanceHandler) List(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	typ := models.FinancialType(c.Query("type"))

	var out []models.FinancialRecord
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		for _, r := range st.Finances {
			if month != "" && !strings.HasPrefix(r.Date, month) {
				continue
			}
			if typ != "" && r.Type != typ {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *FinanceHandler) Create(c *gin.Context) {
	var req CreateFinancialRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if !req.Type.Valid() {
		writeError(c, httperr.ErrBusiness("invalid_type"))
		return
	}
	if !req.Amount.IsPositive() {
		writeError(c, httperr.ErrBusiness("invalid_amount"))
		return
	}
	if !validators.IsDate(req.Date) {
		writeError(c, httperr.ErrBusiness("invalid_date"))
		return
	}

	rec := models.FinancialRecord{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Category:    req.Category,
	}

	err := h.repo.Update(c.Request.Context(), func(st *state.State) error {
		st.Finances = append(st.Finances, rec)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, rec)
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}

	var out FinanceSummary
	err := h.repo.View(c.Request.Context(), func(st *state.State) error {
		out = Summarize(st.Finances, month)
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

package models

import "github.com/shopspring/decimal"

type FinancialType string

const (
	FinancialIncome  FinancialType = "income"
	FinancialExpense FinancialType = "expense"
)

func (t FinancialType) Valid() bool {
	return t == FinancialIncome || t == FinancialExpense
}

const CategoryService = "Serviço"

type FinancialRecord struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        FinancialType   `json:"type"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

package models

import "github.com/shopspring/decimal"

type GlobalSettings struct {
	DefaultPrice    decimal.Decimal `json:"defaultPrice"`
	DefaultDuration int             `json:"defaultDuration"`
}

func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		DefaultPrice:    decimal.NewFromInt(180),
		DefaultDuration: 240,
	}
}

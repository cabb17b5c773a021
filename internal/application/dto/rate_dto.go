package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateResponse tasa de cambio vigente Bs/USD.
type RateResponse struct {
	Currency  string          `json:"currency"` // siempre "Bs"
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
}

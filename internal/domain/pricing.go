package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a distance allowance for a vehicle model. BasePrice is informational
// only; the billed unit price always comes from the BasePrice table.
type Package struct {
	ID                string          `json:"id"`
	ModelID           string          `json:"model_id"`
	Name              string          `json:"name"`
	IncludedDistance  int64           `json:"included_distance"`
	ExtraDistanceRate decimal.Decimal `json:"extra_distance_rate"`
	BasePrice         decimal.Decimal `json:"base_price"`
	Active            bool            `json:"active"`
}

type BasePrice struct {
	ID         string          `json:"id"`
	ModelID    string          `json:"model_id"`
	RentalType RentalType      `json:"rental_type"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Active     bool            `json:"active"`
	CreatedOn  time.Time       `json:"created_on"`
}

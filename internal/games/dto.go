package games

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CreateGameRequest names genre and platform; the store resolves their ids.
type CreateGameRequest struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Genre        string          `json:"genre" validate:"required,max=64"`
	Platform     string          `json:"platform" validate:"required,max=64"`
	YearReleased int             `json:"year_released" validate:"gte=1950,lte=2100"`
	Price        decimal.Decimal `json:"price"`
}

type UpdateGameRequest = CreateGameRequest

func (r *CreateGameRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Genre = strings.TrimSpace(r.Genre)
	r.Platform = strings.TrimSpace(r.Platform)
}

// UpdateStockRequest sets the stock level after a restock or a count.
type UpdateStockRequest struct {
	QuantityInStock *int   `json:"quantity_in_stock" validate:"required,gte=0"`
	RestockDate     string `json:"restock_date" validate:"required"` // YYYY-MM-DD
}

package games

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is one row of the GameDetails view: a game joined with its genre,
// platform and stock.
type Game struct {
	ID              int64           `json:"game_id"`
	Title           string          `json:"title"`
	Genre           string          `json:"genre"`
	YearReleased    int             `json:"year_released"`
	Platform        string          `json:"platform"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Price           decimal.Decimal `json:"price"`
}

type Inventory struct {
	GameID          int64      `json:"game_id"`
	QuantityInStock int        `json:"quantity_in_stock"`
	RestockDate     *time.Time `json:"restock_date,omitempty"`
}

// TopSeller は TopSellingGames ビューの1行
type TopSeller struct {
	GameID       int64           `json:"game_id"`
	Title        string          `json:"game_title"`
	YearReleased int             `json:"year_released"`
	Price        decimal.Decimal `json:"game_price"`
	TotalSales   int64           `json:"total_sales"`
}

type Genre struct {
	ID   int64  `json:"genre_id"`
	Name string `json:"genre_name"`
}

type Platform struct {
	ID   int64  `json:"platform_id"`
	Name string `json:"platform_name"`
}

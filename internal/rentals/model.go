package rentals

import "time"

// Rental は Rentals テーブルの1行。ReturnedDate が nil なら貸出中
type Rental struct {
	ID           int64      `json:"rental_id"`
	CustomerID   int64      `json:"customer_id"`
	GameID       int64      `json:"game_id"`
	ReceivedDate time.Time  `json:"received_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
}

func (r Rental) Active() bool { return r.ReturnedDate == nil }

// ActiveRental carries the view-time classification. It is never stored.
type ActiveRental struct {
	Rental
	DaysOut   int  `json:"days_out"`
	IsOverdue bool `json:"is_overdue"`
}

// HistoryEntry は RentalHistory ビューの1行
type HistoryEntry struct {
	RentalID     int64      `json:"rental_id"`
	CustomerName string     `json:"customer_name"`
	GameTitle    string     `json:"game_title"`
	ReceivedDate time.Time  `json:"received_date"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
}

type ActiveRentalsResponse struct {
	Count   int            `json:"count"`
	Overdue int            `json:"overdue"`
	Rentals []ActiveRental `json:"rentals"`
}

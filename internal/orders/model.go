package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePurchase = "Purchase"
	TypeRental   = "Rental"
)

// PaymentMethods accepted at the counter.
var PaymentMethods = []string{"Credit Card", "Debit Card", "Cash", "Paypal", "Venmo"}

// OrderInfo は OrderInformation ビューの1行
type OrderInfo struct {
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	EmployeeName string          `json:"employee_name"`
	OrderType    string          `json:"order_type"`
	GameTitle    string          `json:"game_title"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// Messages shared with the InsertOrderWithDetails procedure.
const (
	msgNotStocked        = "Game is not stocked in inventory."
	msgInsufficientStock = "Insufficient stock to complete this order."
)

package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment は payments テーブルの1行（注文登録の副作用でのみ作られる）
type Payment struct {
	ID            int64           `json:"payment_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	OrderID       int64           `json:"order_id"`
}

type MethodTotal struct {
	Count     int             `json:"count"`
	AmountSum decimal.Decimal `json:"amount_sum"`
}

// Summary groups payments by method. TotalCount and TotalAmount equal the
// sums over ByMethod.
type Summary struct {
	ByMethod    map[string]MethodTotal `json:"by_method"`
	Methods     []string               `json:"methods"`
	TotalCount  int                    `json:"total_count"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
}

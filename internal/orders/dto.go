package orders

import (
	"strconv"
	"strings"
	"time"

	"gamevault-backend/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

// OrderForm is the raw text of the order form.
type OrderForm struct {
	CustomerID    string `json:"customer_id" form:"customer_id"`
	EmployeeID    string `json:"employee_id" form:"employee_id"`
	OrderType     string `json:"order_type" form:"order_type"`
	PaymentMethod string `json:"payment_method" form:"payment_method"`
	OrderDate     string `json:"order_date" form:"order_date"` // YYYY-MM-DD
	GameID        string `json:"game_id" form:"game_id"`
	Quantity      string `json:"quantity" form:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerID    int64     `validate:"gt=0"`
	EmployeeID    int64     `validate:"gt=0"`
	OrderType     string    `validate:"required,oneof=Purchase Rental"`
	PaymentMethod string    `validate:"required,oneof='Credit Card' 'Debit Card' Cash Paypal Venmo"`
	OrderDate     time.Time `validate:"required"`
	GameID        int64     `validate:"gt=0"`
	Quantity      int       `validate:"gt=0"`
}

type PlaceOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// ParseOrderForm converts form text into a request. Every absent or
// malformed field is reported in one INVALID_ARGUMENT error.
func ParseOrderForm(f OrderForm) (PlaceOrderRequest, error) {
	var (
		req  PlaceOrderRequest
		errs []string
	)
	parseID := func(name, raw string, dst *int64) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			errs = append(errs, name+" is required")
			return
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, name+" must be an integer")
			return
		}
		*dst = v
	}

	parseID("customer_id", f.CustomerID, &req.CustomerID)
	parseID("employee_id", f.EmployeeID, &req.EmployeeID)
	parseID("game_id", f.GameID, &req.GameID)

	var qty int64
	parseID("quantity", f.Quantity, &qty)
	req.Quantity = int(qty)

	if d := strings.TrimSpace(f.OrderDate); d == "" {
		errs = append(errs, "order_date is required")
	} else if t, err := time.Parse(dateLayout, d); err != nil {
		errs = append(errs, "order_date must be a date (YYYY-MM-DD)")
	} else {
		req.OrderDate = t
	}

	req.OrderType = strings.TrimSpace(f.OrderType)
	req.PaymentMethod = strings.TrimSpace(f.PaymentMethod)

	if len(errs) > 0 {
		return PlaceOrderRequest{}, apperr.ErrInvalid(strings.Join(errs, "; "))
	}
	return req, nil
}

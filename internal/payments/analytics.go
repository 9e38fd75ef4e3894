package payments

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gamevault-backend/internal/platform/apperr"
)

// Snapshot is one read of the payments table. Filtering works on it without
// going back to the store.
type Snapshot struct {
	Payments []Payment `json:"payments"`
	LoadedAt time.Time `json:"loaded_at"`
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterByDateRange keeps payments dated start..end, both inclusive, compared
// as calendar dates.
func (s Snapshot) FilterByDateRange(start, end *time.Time) ([]Payment, error) {
	if start == nil || end == nil {
		return nil, apperr.ErrInvalid("both start and end dates are required")
	}
	from, to := civil(*start), civil(*end)
	if to.Before(from) {
		return nil, apperr.ErrInvalid("end date must not be before start date")
	}

	out := make([]Payment, 0, len(s.Payments))
	for _, p := range s.Payments {
		d := civil(p.PaymentDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// AggregateByMethod counts and sums the given payments per payment method.
func AggregateByMethod(payments []Payment) Summary {
	sum := Summary{
		ByMethod:    make(map[string]MethodTotal),
		Methods:     make([]string, 0),
		TotalAmount: decimal.Zero,
	}
	for _, p := range payments {
		mt, ok := sum.ByMethod[p.PaymentMethod]
		if !ok {
			mt.AmountSum = decimal.Zero
			sum.Methods = append(sum.Methods, p.PaymentMethod)
		}
		mt.Count++
		mt.AmountSum = mt.AmountSum.Add(p.AmountPaid)
		sum.ByMethod[p.PaymentMethod] = mt

		sum.TotalCount++
		sum.TotalAmount = sum.TotalAmount.Add(p.AmountPaid)
	}
	sort.Strings(sum.Methods)
	return sum
}

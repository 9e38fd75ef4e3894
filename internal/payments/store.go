package payments

import (
	"context"

	"gamevault-backend/internal/platform/db"
)

type Store struct {
	q db.DBTX
}

func NewStore(q db.DBTX) *Store { return &Store{q: q} }

func (s *Store) List(ctx context.Context) ([]Payment, error) {
	const q = `
		SELECT payment_id, payment_date, payment_method, amount_paid, order_id
		FROM payments
		ORDER BY payment_id`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Payment, 0)
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.PaymentDate, &p.PaymentMethod, &p.AmountPaid, &p.OrderID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

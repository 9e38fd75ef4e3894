package rentals

import (
	"context"
	"database/sql"
	"time"

	"gamevault-backend/internal/platform/db"
)

type Store struct {
	q db.DBTX
}

func NewStore(q db.DBTX) *Store { return &Store{q: q} }

func nullTimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}

func (s *Store) ListActive(ctx context.Context) ([]Rental, error) {
	const q = `
		SELECT rental_id, customer_id, game_id, received_date, returned_date
		FROM Rentals
		WHERE returned_date IS NULL`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Rental, 0)
	for rows.Next() {
		var (
			r        Rental
			returned sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.GameID, &r.ReceivedDate, &returned); err != nil {
			return nil, err
		}
		r.ReturnedDate = nullTimePtr(returned)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	const q = `
		SELECT rental_id, customer_name, game_title, received_date, returned_date
		FROM RentalHistory`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HistoryEntry, 0)
	for rows.Next() {
		var (
			h        HistoryEntry
			returned sql.NullTime
		)
		if err := rows.Scan(&h.RentalID, &h.CustomerName, &h.GameTitle, &h.ReceivedDate, &returned); err != nil {
			return nil, err
		}
		h.ReturnedDate = nullTimePtr(returned)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) CountActive(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM Rentals WHERE returned_date IS NULL`
	var n int
	if err := s.q.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// MarkReturned sets the store's current date on an active rental. The date
// never goes below received_date. Already returned rentals are left alone.
func (s *Store) MarkReturned(ctx context.Context, id int64) (int64, error) {
	const q = `
		UPDATE Rentals
		SET returned_date = GREATEST(CURDATE(), received_date)
		WHERE rental_id = ? AND returned_date IS NULL`
	res, err := s.q.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

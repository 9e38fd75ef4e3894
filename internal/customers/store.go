package customers

import (
	"context"
	"database/sql"
	"errors"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

const customerColumns = `customer_id, first_name, last_name, email, is_member`

// Store runs statements on the connection handed out by the gateway.
type Store struct {
	q db.DBTX
}

func NewStore(q db.DBTX) *Store { return &Store{q: q} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(r rowScanner) (Customer, error) {
	var c Customer
	err := r.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.IsMember)
	return c, err
}

func (s *Store) List(ctx context.Context) ([]Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM Customers ORDER BY customer_id`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (*Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM Customers WHERE customer_id = ?`
	c, err := scanCustomer(s.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("customer not found")
		}
		return nil, err
	}
	return &c, nil
}

// Add inserts through the AddCustomer procedure. The procedure returns no id.
func (s *Store) Add(ctx context.Context, req CreateCustomerRequest) error {
	const q = `CALL AddCustomer(?, ?, ?, ?)`
	_, err := s.q.ExecContext(ctx, q, req.FirstName, req.LastName, req.Email, req.IsMember)
	return err
}

// LastInserted reads the row created by the last insert on this connection.
func (s *Store) LastInserted(ctx context.Context) (*Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM Customers WHERE customer_id = LAST_INSERT_ID()`
	c, err := scanCustomer(s.q.QueryRowContext(ctx, q))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("customer not found")
		}
		return nil, err
	}
	return &c, nil
}

// FindNewest returns the most recent customer with exactly these fields.
func (s *Store) FindNewest(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	const q = `
		SELECT ` + customerColumns + `
		FROM Customers
		WHERE first_name = ? AND last_name = ? AND email = ?
		ORDER BY customer_id DESC
		LIMIT 1`
	c, err := scanCustomer(s.q.QueryRowContext(ctx, q, req.FirstName, req.LastName, req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("customer not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (int64, error) {
	const q = `
		UPDATE Customers
		SET first_name = ?, last_name = ?, email = ?, is_member = ?
		WHERE customer_id = ?`
	res, err := s.q.ExecContext(ctx, q, req.FirstName, req.LastName, req.Email, req.IsMember, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM Customers WHERE customer_id = ?`
	res, err := s.q.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

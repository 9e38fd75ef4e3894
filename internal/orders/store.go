package orders

import (
	"context"
	"database/sql"
	"errors"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

type Store struct {
	q db.DBTX
}

func NewStore(q db.DBTX) *Store { return &Store{q: q} }

func (s *Store) List(ctx context.Context) ([]OrderInfo, error) {
	const q = `
		SELECT order_id, customer_name, order_date, employee_name, order_type, game_title, total_amount
		FROM OrderInformation`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderInfo, 0)
	for rows.Next() {
		var o OrderInfo
		if err := rows.Scan(&o.OrderID, &o.CustomerName, &o.OrderDate, &o.EmployeeName,
			&o.OrderType, &o.GameTitle, &o.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ---- procedure ----

// CallInsertOrder runs the whole placement as one procedure call.
// found is false when the procedure returned no order_id row.
func (s *Store) CallInsertOrder(ctx context.Context, r PlaceOrderRequest) (orderID int64, found bool, err error) {
	const q = `CALL InsertOrderWithDetails(?, ?, ?, ?, ?, ?, ?)`
	rows, err := s.q.QueryContext(ctx, q,
		r.CustomerID, r.EmployeeID, r.OrderType, r.PaymentMethod, r.OrderDate, r.GameID, r.Quantity)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&orderID); err != nil {
			return 0, false, err
		}
		found = true
	}
	return orderID, found, rows.Err()
}

// ResolveOrderID finds the newest order matching the request.
func (s *Store) ResolveOrderID(ctx context.Context, r PlaceOrderRequest) (int64, error) {
	const q = `
		SELECT order_id FROM Orders
		WHERE customer_id = ? AND employee_id = ? AND order_date = ?
		ORDER BY order_id DESC
		LIMIT 1`
	var id int64
	if err := s.q.QueryRowContext(ctx, q, r.CustomerID, r.EmployeeID, r.OrderDate).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrInternal("order was placed but its id could not be resolved")
		}
		return 0, err
	}
	return id, nil
}

// ---- inline (one transaction, row lock on Inventory) ----

func (s *Store) lockStock(ctx context.Context, gameID int64) (int, error) {
	const q = `SELECT quantity_in_stock FROM Inventory WHERE game_id = ? FOR UPDATE`
	var stock int
	if err := s.q.QueryRowContext(ctx, q, gameID).Scan(&stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrBusiness(msgNotStocked)
		}
		return 0, err
	}
	return stock, nil
}

func (s *Store) decrementStock(ctx context.Context, gameID int64, qty int) error {
	const q = `
		UPDATE Inventory
		SET quantity_in_stock = quantity_in_stock - ?
		WHERE game_id = ? AND quantity_in_stock >= ?`
	res, err := s.q.ExecContext(ctx, q, qty, gameID, qty)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff != 1 {
		return apperr.ErrBusiness(msgInsufficientStock)
	}
	return nil
}

// insertOrder computes total_amount from the stored price.
func (s *Store) insertOrder(ctx context.Context, r PlaceOrderRequest) (int64, error) {
	const q = `
		INSERT INTO Orders (customer_id, employee_id, order_type, payment_method, order_date, total_amount)
		SELECT ?, ?, ?, ?, ?, g.price * ?
		FROM Games g
		WHERE g.game_id = ?`
	res, err := s.q.ExecContext(ctx, q,
		r.CustomerID, r.EmployeeID, r.OrderType, r.PaymentMethod, r.OrderDate, r.Quantity, r.GameID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) insertDetail(ctx context.Context, orderID int64, r PlaceOrderRequest) error {
	const q = `
		INSERT INTO OrderDetails (order_id, game_id, quantity, unit_price)
		SELECT ?, g.game_id, ?, g.price
		FROM Games g
		WHERE g.game_id = ?`
	_, err := s.q.ExecContext(ctx, q, orderID, r.Quantity, r.GameID)
	return err
}

func (s *Store) insertPayment(ctx context.Context, orderID int64) error {
	const q = `
		INSERT INTO payments (payment_date, payment_method, amount_paid, order_id)
		SELECT order_date, payment_method, total_amount, order_id
		FROM Orders
		WHERE order_id = ?`
	_, err := s.q.ExecContext(ctx, q, orderID)
	return err
}

func (s *Store) insertRental(ctx context.Context, r PlaceOrderRequest) error {
	const q = `INSERT INTO Rentals (customer_id, game_id, received_date) VALUES (?, ?, ?)`
	_, err := s.q.ExecContext(ctx, q, r.CustomerID, r.GameID, r.OrderDate)
	return err
}

// ExecPlaceOrder mirrors InsertOrderWithDetails. Must run inside a transaction.
func (s *Store) ExecPlaceOrder(ctx context.Context, r PlaceOrderRequest) (int64, error) {
	// 1. Lock inventory row
	stock, err := s.lockStock(ctx, r.GameID)
	if err != nil {
		return 0, err
	}
	// 2. Stock check
	if stock < r.Quantity {
		return 0, apperr.ErrBusiness(msgInsufficientStock)
	}
	// 3. Decrement stock
	if err := s.decrementStock(ctx, r.GameID, r.Quantity); err != nil {
		return 0, err
	}
	// 4. Order, detail line, payment
	orderID, err := s.insertOrder(ctx, r)
	if err != nil {
		return 0, err
	}
	if err := s.insertDetail(ctx, orderID, r); err != nil {
		return 0, err
	}
	if err := s.insertPayment(ctx, orderID); err != nil {
		return 0, err
	}
	// 5. Rental orders open a rental
	if r.OrderType == TypeRental {
		if err := s.insertRental(ctx, r); err != nil {
			return 0, err
		}
	}
	return orderID, nil
}

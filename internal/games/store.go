package games

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

// DetailColumns is the column order of GameDetails and of SearchGames results.
const DetailColumns = `game_id, title, genre_name, year_released, platform_name, quantity_in_stock, price`

type Store struct {
	q db.DBTX
}

func NewStore(q db.DBTX) *Store { return &Store{q: q} }

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanGame reads one row in DetailColumns order.
func ScanGame(r RowScanner) (Game, error) {
	var g Game
	err := r.Scan(&g.ID, &g.Title, &g.Genre, &g.YearReleased, &g.Platform, &g.QuantityInStock, &g.Price)
	return g, err
}

// CollectGames drains rows into a non-nil slice.
func CollectGames(rows *sql.Rows) ([]Game, error) {
	defer rows.Close()
	out := make([]Game, 0)
	for rows.Next() {
		g, err := ScanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Game, error) {
	const q = `SELECT ` + DetailColumns + ` FROM GameDetails`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return CollectGames(rows)
}

func (s *Store) Get(ctx context.Context, id int64) (*Game, error) {
	const q = `SELECT ` + DetailColumns + ` FROM GameDetails WHERE game_id = ?`
	g, err := ScanGame(s.q.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound("game not found")
		}
		return nil, err
	}
	return &g, nil
}

// GenreID: genre_name -> genre_id
func (s *Store) GenreID(ctx context.Context, name string) (int64, error) {
	const q = `SELECT genre_id FROM Genres WHERE genre_name = ?`
	var id int64
	if err := s.q.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrInvalid("unknown genre: " + name)
		}
		return 0, err
	}
	return id, nil
}

// PlatformID: platform_name -> platform_id
func (s *Store) PlatformID(ctx context.Context, name string) (int64, error) {
	const q = `SELECT platform_id FROM Platforms WHERE platform_name = ?`
	var id int64
	if err := s.q.QueryRowContext(ctx, q, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrInvalid("unknown platform: " + name)
		}
		return 0, err
	}
	return id, nil
}

func (s *Store) InsertGame(ctx context.Context, genreID, platformID int64, req CreateGameRequest) (int64, error) {
	const q = `
		INSERT INTO Games (title, genre_id, platform_id, year_released, price)
		VALUES (?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q, req.Title, genreID, platformID, req.YearReleased, req.Price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertInventory creates the paired stock row with quantity 0.
func (s *Store) InsertInventory(ctx context.Context, gameID int64) error {
	const q = `INSERT INTO Inventory (game_id, quantity_in_stock, restock_date) VALUES (?, 0, NULL)`
	_, err := s.q.ExecContext(ctx, q, gameID)
	return err
}

func (s *Store) UpdateGame(ctx context.Context, id, genreID, platformID int64, req UpdateGameRequest) (int64, error) {
	const q = `
		UPDATE Games
		SET title = ?, genre_id = ?, platform_id = ?, year_released = ?, price = ?
		WHERE game_id = ?`
	res, err := s.q.ExecContext(ctx, q, req.Title, genreID, platformID, req.YearReleased, req.Price, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteGame removes the game; its Inventory row goes with it (ON DELETE CASCADE).
func (s *Store) DeleteGame(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM Games WHERE game_id = ?`
	res, err := s.q.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdateStock(ctx context.Context, id int64, quantity int, restock time.Time) (int64, error) {
	const q = `UPDATE Inventory SET quantity_in_stock = ?, restock_date = ? WHERE game_id = ?`
	res, err := s.q.ExecContext(ctx, q, quantity, restock, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) TopSelling(ctx context.Context, limit int) ([]TopSeller, error) {
	const q = `
		SELECT game_id, game_title, year_released, game_price, total_sales
		FROM TopSellingGames
		LIMIT ?`
	rows, err := s.q.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TopSeller, 0, limit)
	for rows.Next() {
		var t TopSeller
		if err := rows.Scan(&t.GameID, &t.Title, &t.YearReleased, &t.Price, &t.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) ListGenres(ctx context.Context) ([]Genre, error) {
	const q = `SELECT genre_id, genre_name FROM Genres ORDER BY genre_name`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) ListPlatforms(ctx context.Context) ([]Platform, error) {
	const q = `SELECT platform_id, platform_name FROM Platforms ORDER BY platform_name`
	rows, err := s.q.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Platform, 0)
	for rows.Next() {
		var p Platform
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

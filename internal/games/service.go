package games

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
	"gamevault-backend/internal/platform/validate"
)

const (
	DefaultTopSellingLimit = 5
	maxTopSellingLimit     = 100
	dateLayout             = "2006-01-02"
)

type Service struct {
	gw  *db.Gateway
	log *zap.Logger
}

func NewService(gw *db.Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, log: log.Named("games")}
}

func (s *Service) List(ctx context.Context) ([]Game, error) {
	var out []Game
	err := s.gw.WithConnection(ctx, "games.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).List(ctx)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (*Game, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid("game_id must be > 0")
	}
	var out *Game
	err := s.gw.WithConnection(ctx, "games.get", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).Get(ctx, id)
		return err
	})
	return out, err
}

func validateGame(req *CreateGameRequest) error {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return apperr.ErrInvalid("Price must be >= 0")
	}
	return nil
}

// Create inserts the game, then its Inventory row with quantity 0.
// The two inserts are separate statements: if the second fails the game
// stays without stock and the error names its id.
func (s *Service) Create(ctx context.Context, req CreateGameRequest) (*Game, error) {
	if err := validateGame(&req); err != nil {
		return nil, err
	}

	var out *Game
	err := s.gw.WithConnection(ctx, "games.create", func(ctx context.Context, conn db.DBTX) error {
		st := NewStore(conn)
		genreID, err := st.GenreID(ctx, req.Genre)
		if err != nil {
			return err
		}
		platformID, err := st.PlatformID(ctx, req.Platform)
		if err != nil {
			return err
		}

		// 1. Games
		gameID, err := st.InsertGame(ctx, genreID, platformID, req)
		if err != nil {
			return err
		}
		// 2. Inventory（補償処理なし）
		if err := st.InsertInventory(ctx, gameID); err != nil {
			s.log.Error("game created without inventory row",
				zap.Int64("game_id", gameID), zap.Error(err))
			return apperr.Wrap(apperr.CodeInternal,
				fmt.Sprintf("game %d was created but its inventory row could not be inserted", gameID), err)
		}

		out, err = st.Get(ctx, gameID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("game created", zap.Int64("game_id", out.ID), zap.String("title", out.Title))
	return out, nil
}

// Update replaces every field of the game. A missing id is a silent no-op.
func (s *Service) Update(ctx context.Context, id int64, req UpdateGameRequest) error {
	if id <= 0 {
		return apperr.ErrInvalid("game_id must be > 0")
	}
	if err := validateGame(&req); err != nil {
		return err
	}

	var affected int64
	err := s.gw.WithConnection(ctx, "games.update", func(ctx context.Context, conn db.DBTX) error {
		st := NewStore(conn)
		genreID, err := st.GenreID(ctx, req.Genre)
		if err != nil {
			return err
		}
		platformID, err := st.PlatformID(ctx, req.Platform)
		if err != nil {
			return err
		}
		affected, err = st.UpdateGame(ctx, id, genreID, platformID, req)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Warn("update touched no game", zap.Int64("game_id", id))
	}
	return nil
}

// Delete removes the game and its stock row. A missing id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid("game_id must be > 0")
	}
	var affected int64
	err := s.gw.WithConnection(ctx, "games.delete", func(ctx context.Context, conn db.DBTX) error {
		var err error
		affected, err = NewStore(conn).DeleteGame(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Warn("delete touched no game", zap.Int64("game_id", id))
	}
	return nil
}

// UpdateStock sets quantity and restock date of one game.
func (s *Service) UpdateStock(ctx context.Context, id int64, req UpdateStockRequest) (*Inventory, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid("game_id must be > 0")
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	restock, err := time.Parse(dateLayout, req.RestockDate)
	if err != nil {
		return nil, apperr.ErrInvalid("RestockDate must be a date (YYYY-MM-DD)")
	}

	var affected int64
	err = s.gw.WithConnection(ctx, "games.update_stock", func(ctx context.Context, conn db.DBTX) error {
		var err error
		affected, err = NewStore(conn).UpdateStock(ctx, id, *req.QuantityInStock, restock)
		return err
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		s.log.Warn("stock update touched no inventory row", zap.Int64("game_id", id))
	}
	return &Inventory{GameID: id, QuantityInStock: *req.QuantityInStock, RestockDate: &restock}, nil
}

// TopSelling lists best sellers by units sold. limit <= 0 means the default.
func (s *Service) TopSelling(ctx context.Context, limit int) ([]TopSeller, error) {
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	if limit > maxTopSellingLimit {
		limit = maxTopSellingLimit
	}
	var out []TopSeller
	err := s.gw.WithConnection(ctx, "games.top_selling", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).TopSelling(ctx, limit)
		return err
	})
	return out, err
}

func (s *Service) ListGenres(ctx context.Context) ([]Genre, error) {
	var out []Genre
	err := s.gw.WithConnection(ctx, "genres.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).ListGenres(ctx)
		return err
	})
	return out, err
}

func (s *Service) ListPlatforms(ctx context.Context) ([]Platform, error) {
	var out []Platform
	err := s.gw.WithConnection(ctx, "platforms.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).ListPlatforms(ctx)
		return err
	})
	return out, err
}

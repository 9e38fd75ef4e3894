package rentals

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Service struct {
	gw    *db.Gateway
	log   *zap.Logger
	clock Clock
	loc   *time.Location
}

// NewService classifies rentals against "today" in loc (UTC when nil).
func NewService(gw *db.Gateway, log *zap.Logger, loc *time.Location) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{gw: gw, log: log.Named("rentals"), clock: realClock{}, loc: loc}
}

func (s *Service) today() time.Time {
	return s.clock.Now().In(s.loc)
}

// ListActive returns rentals without a returned date, classified against
// today's date at the time of the call.
func (s *Service) ListActive(ctx context.Context) ([]ActiveRental, error) {
	var rows []Rental
	err := s.gw.WithConnection(ctx, "rentals.list_active", func(ctx context.Context, conn db.DBTX) error {
		var err error
		rows, err = NewStore(conn).ListActive(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	today := s.today()
	out := make([]ActiveRental, 0, len(rows))
	for _, r := range rows {
		out = append(out, classify(r, today))
	}
	return out, nil
}

func (s *Service) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	var out []HistoryEntry
	err := s.gw.WithConnection(ctx, "rentals.list_history", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).ListHistory(ctx)
		return err
	})
	return out, err
}

func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	var n int
	err := s.gw.WithConnection(ctx, "rentals.count_active", func(ctx context.Context, conn db.DBTX) error {
		var err error
		n, err = NewStore(conn).CountActive(ctx)
		return err
	})
	return n, err
}

// MarkReturned moves an active rental to returned. A missing id or an
// already returned rental is a no-op.
func (s *Service) MarkReturned(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid("rental_id must be > 0")
	}
	var affected int64
	err := s.gw.WithConnection(ctx, "rentals.mark_returned", func(ctx context.Context, conn db.DBTX) error {
		var err error
		affected, err = NewStore(conn).MarkReturned(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Warn("return touched no active rental", zap.Int64("rental_id", id))
		return nil
	}
	s.log.Info("rental returned", zap.Int64("rental_id", id))
	return nil
}

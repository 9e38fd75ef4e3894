package payments

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/db"
)

type Service struct {
	gw  *db.Gateway
	log *zap.Logger
	now func() time.Time
}

func NewService(gw *db.Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, log: log.Named("payments"), now: time.Now}
}

// ListAll reads every payment once. Callers filter and aggregate the snapshot.
func (s *Service) ListAll(ctx context.Context) (Snapshot, error) {
	var list []Payment
	err := s.gw.WithConnection(ctx, "payments.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		list, err = NewStore(conn).List(ctx)
		return err
	})
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Payments: list, LoadedAt: s.now()}, nil
}

// Range loads a snapshot and narrows it to from..to when both are given.
// With neither bound the whole snapshot is returned; with one it is an error.
func (s *Service) Range(ctx context.Context, from, to *time.Time) ([]Payment, error) {
	snap, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return snap.Payments, nil
	}
	return snap.FilterByDateRange(from, to)
}

package customers

import (
	"context"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
	"gamevault-backend/internal/platform/validate"
)

type Service struct {
	gw  *db.Gateway
	log *zap.Logger
}

func NewService(gw *db.Gateway, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{gw: gw, log: log.Named("customers")}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := s.gw.WithConnection(ctx, "customers.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).List(ctx)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	if id <= 0 {
		return nil, apperr.ErrInvalid("customer_id must be > 0")
	}
	var out *Customer
	err := s.gw.WithConnection(ctx, "customers.get", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).Get(ctx, id)
		return err
	})
	return out, err
}

// Create adds a customer and returns the reloaded row with its generated id.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var out *Customer
	err := s.gw.WithConnection(ctx, "customers.create", func(ctx context.Context, conn db.DBTX) error {
		st := NewStore(conn)
		if err := st.Add(ctx, req); err != nil {
			return err
		}
		// 同一接続なので LAST_INSERT_ID() がプロシージャ内の INSERT を指す
		c, err := st.LastInserted(ctx)
		if apperr.Is(err, apperr.CodeNotFound) {
			c, err = st.FindNewest(ctx, req)
		}
		if apperr.Is(err, apperr.CodeNotFound) {
			return apperr.ErrInternal("customer was added but could not be reloaded")
		}
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("customer created", zap.Int64("customer_id", out.ID))
	return out, nil
}

// Update replaces every field. A missing id is a silent no-op.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) error {
	if id <= 0 {
		return apperr.ErrInvalid("customer_id must be > 0")
	}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return err
	}
	var affected int64
	err := s.gw.WithConnection(ctx, "customers.update", func(ctx context.Context, conn db.DBTX) error {
		var err error
		affected, err = NewStore(conn).Update(ctx, id, req)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Warn("update touched no customer", zap.Int64("customer_id", id))
	}
	return nil
}

// Delete removes the customer. A missing id is a silent no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.ErrInvalid("customer_id must be > 0")
	}
	var affected int64
	err := s.gw.WithConnection(ctx, "customers.delete", func(ctx context.Context, conn db.DBTX) error {
		var err error
		affected, err = NewStore(conn).Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Warn("delete touched no customer", zap.Int64("customer_id", id))
	}
	return nil
}

package orders

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/db"
	"gamevault-backend/internal/platform/metrics"
	"gamevault-backend/internal/platform/validate"
)

// Placement chooses how an order reaches the store.
type Placement string

const (
	// PlacementProcedure calls InsertOrderWithDetails once.
	PlacementProcedure Placement = "procedure"
	// PlacementInline runs the same statements in one transaction with a row lock.
	PlacementInline Placement = "inline"
)

func ParsePlacement(s string) (Placement, error) {
	switch Placement(s) {
	case "", PlacementProcedure:
		return PlacementProcedure, nil
	case PlacementInline:
		return PlacementInline, nil
	}
	return "", fmt.Errorf("unknown order placement %q (want procedure or inline)", s)
}

type Service struct {
	gw        *db.Gateway
	log       *zap.Logger
	metrics   *metrics.Metrics
	placement Placement
}

func NewService(gw *db.Gateway, log *zap.Logger, m *metrics.Metrics, placement Placement) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if placement == "" {
		placement = PlacementProcedure
	}
	return &Service{gw: gw, log: log.Named("orders"), metrics: m, placement: placement}
}

func (s *Service) List(ctx context.Context) ([]OrderInfo, error) {
	var out []OrderInfo
	err := s.gw.WithConnection(ctx, "orders.list", func(ctx context.Context, conn db.DBTX) error {
		var err error
		out, err = NewStore(conn).List(ctx)
		return err
	})
	return out, err
}

// PlaceOrderForm parses the raw form, then places the order.
func (s *Service) PlaceOrderForm(ctx context.Context, f OrderForm) (int64, error) {
	req, err := ParseOrderForm(f)
	if err != nil {
		s.metrics.ObserveOrder(typeLabel(f.OrderType), string(apperr.CodeInvalidArgument))
		return 0, err
	}
	return s.PlaceOrder(ctx, req)
}

// PlaceOrder checks stock, decrements it and writes the order, its detail
// line and its payment as one atomic unit. Rental orders also open a rental.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (orderID int64, err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(apperr.CodeOf(err))
		}
		s.metrics.ObserveOrder(typeLabel(req.OrderType), outcome)
	}()

	if err := validate.Struct(req); err != nil {
		return 0, err
	}

	switch s.placement {
	case PlacementInline:
		orderID, err = s.placeInline(ctx, req)
	default:
		orderID, err = s.placeByProcedure(ctx, req)
	}
	if err != nil {
		if apperr.Is(err, apperr.CodeBusinessRule) {
			s.log.Info("order rejected",
				zap.Int64("game_id", req.GameID), zap.Int("quantity", req.Quantity), zap.Error(err))
		}
		return 0, err
	}

	s.log.Info("order placed",
		zap.Int64("order_id", orderID),
		zap.String("order_type", req.OrderType),
		zap.Int64("game_id", req.GameID),
		zap.Int("quantity", req.Quantity))
	return orderID, nil
}

func (s *Service) placeByProcedure(ctx context.Context, req PlaceOrderRequest) (int64, error) {
	var orderID int64
	err := s.gw.WithConnection(ctx, "orders.place", func(ctx context.Context, conn db.DBTX) error {
		st := NewStore(conn)
		id, found, err := st.CallInsertOrder(ctx, req)
		if err != nil {
			return err
		}
		if !found {
			if id, err = st.ResolveOrderID(ctx, req); err != nil {
				return err
			}
		}
		orderID = id
		return nil
	})
	return orderID, err
}

func (s *Service) placeInline(ctx context.Context, req PlaceOrderRequest) (int64, error) {
	var orderID int64
	err := s.gw.WithTx(ctx, "orders.place_inline", &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		var err error
		orderID, err = NewStore(tx).ExecPlaceOrder(ctx, req)
		return err
	})
	return orderID, err
}

// typeLabel keeps the metric label set closed.
func typeLabel(t string) string {
	if t == TypePurchase || t == TypeRental {
		return t
	}
	return "unknown"
}

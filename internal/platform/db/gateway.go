package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"gamevault-backend/internal/platform/apperr"
	"gamevault-backend/internal/platform/metrics"
)

// Gateway hands each operation its own connection and releases it afterwards.
// It keeps no connection between calls.
type Gateway struct {
	db      *sql.DB
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewGateway(db *sql.DB, log *zap.Logger, m *metrics.Metrics) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{db: db, log: log, metrics: m}
}

// WithConnection acquires a dedicated connection, runs op on it and releases it
// on every exit path. Statements auto-commit individually.
func (g *Gateway) WithConnection(ctx context.Context, name string, op func(ctx context.Context, conn DBTX) error) (err error) {
	started := time.Now()
	defer func() { g.observe(name, err, started) }()

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnavailable, "database unavailable: "+err.Error(), err)
	}
	defer conn.Close()

	if opErr := op(ctx, conn); opErr != nil {
		return apperr.FromStore(opErr)
	}
	return nil
}

// WithTx runs op inside one transaction on one dedicated connection.
func (g *Gateway) WithTx(ctx context.Context, name string, opts *sql.TxOptions, op func(ctx context.Context, tx DBTX) error) (err error) {
	started := time.Now()
	defer func() { g.observe(name, err, started) }()

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return apperr.Wrap(apperr.CodeUnavailable, "database unavailable: "+err.Error(), err)
	}
	defer conn.Close()

	if txErr := RunInTx(ctx, conn, opts, op); txErr != nil {
		return apperr.FromStore(txErr)
	}
	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return apperr.Wrap(apperr.CodeUnavailable, "database unavailable: "+err.Error(), err)
	}
	return nil
}

func (g *Gateway) Close() error { return g.db.Close() }

func (g *Gateway) observe(name string, err error, started time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.CodeOf(err))
	}
	g.metrics.ObserveStore(name, outcome, started)

	fields := []zap.Field{zap.String("operation", name), zap.Duration("elapsed", time.Since(started))}
	if err == nil {
		g.log.Debug("store operation", fields...)
		return
	}
	switch apperr.CodeOf(err) {
	case apperr.CodeInternal, apperr.CodeUnavailable:
		g.log.Error("store operation failed", append(fields, zap.Error(err))...)
	default:
		g.log.Debug("store operation rejected", append(fields, zap.Error(err))...)
	}
}

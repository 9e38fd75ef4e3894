package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gamevault-backend/internal/customers"
	"gamevault-backend/internal/games"
	"gamevault-backend/internal/orders"
	"gamevault-backend/internal/payments"
	"gamevault-backend/internal/platform/db"
	"gamevault-backend/internal/platform/httpx"
	"gamevault-backend/internal/platform/logger"
	"gamevault-backend/internal/platform/metrics"
	"gamevault-backend/internal/rentals"
	"gamevault-backend/internal/search"
)

const serviceName = "gamevault-backend"

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the yaml config")
	flag.Parse()

	// 設定読み込み
	cfg, err := db.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Fprintf(os.Stderr, "unknown mode %q (want dev or release)\n", cfg.Mode)
		os.Exit(2)
	}

	log := logger.New(serviceName, cfg.Log.Level)
	defer log.Sync()
	log.Info("starting", zap.String("mode", cfg.Mode), zap.String("version", cfg.Version))

	placement, err := orders.ParsePlacement(cfg.Orders.Placement)
	if err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	loc, err := time.LoadLocation(cfg.Rentals.TimeZone)
	if err != nil {
		log.Fatal("invalid rentals.timezone", zap.String("timezone", cfg.Rentals.TimeZone), zap.Error(err))
	}

	if cfg.DB.MigrateOnStart {
		if err := db.Migrate(cfg.DB); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		log.Info("migrations applied")
	}

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatal("database connect failed", zap.String("host", cfg.DB.Host), zap.Error(err))
	}
	log.Info("connected to DB", zap.String("dbname", cfg.DB.DBName))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	gw := db.NewGateway(conn, log, m)
	defer gw.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(httpx.NewULIDGen()), httpx.AccessLog(log))
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", httpx.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", httpx.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) {
		if err := gw.Ping(c.Request.Context()); err != nil {
			httpx.WriteError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// /api/v1
	api := r.Group("/api/v1")
	customers.RegisterRoutes(api, customers.NewService(gw, log))
	games.RegisterRoutes(api, games.NewService(gw, log))
	search.RegisterRoutes(api, search.NewService(gw, log))
	orders.RegisterRoutes(api, orders.NewService(gw, log, m, placement))
	rentals.RegisterRoutes(api, rentals.NewService(gw, log, loc))
	payments.RegisterRoutes(api, payments.NewService(gw, log))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		var err error
		if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			log.Info("listening (TLS)", zap.String("addr", srv.Addr))
			err = srv.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			log.Info("listening", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

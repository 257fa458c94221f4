package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divvly/divvly/internal/api"
	"github.com/divvly/divvly/internal/auth"
	"github.com/divvly/divvly/internal/config"
	"github.com/divvly/divvly/internal/payments"
	"github.com/divvly/divvly/internal/service"
	"github.com/divvly/divvly/internal/storage/sqlite"
	"github.com/divvly/divvly/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret not configured; set DIVVLY_JWT_SECRET")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	var rail *payments.LocalRail
	if cfg.Ledger.RailEnabled {
		rail = payments.NewLocalRail()
		slog.Info("Value-transfer rail enabled")
	} else {
		slog.Info("Value-transfer rail disabled, settlements are record-only")
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authenticator := auth.NewPasswordAuthenticator(store)

	deps := api.RouterDeps{
		AuthSvc:       service.NewAuthService(authenticator, jwtManager, slog.Default()),
		GroupSvc:      service.NewGroupService(store, cfg.Ledger.MaxMembers),
		LedgerSvc:     service.NewLedgerService(store),
		SettlementSvc: newSettlementService(store, rail),
		JWTManager:    jwtManager,
		Rail:          rail,
		Mode:          cfg.Server.Mode,
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.SetupRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// newSettlementService keeps the nil-rail case a true nil interface.
func newSettlementService(store *sqlite.SQLiteStore, rail *payments.LocalRail) *service.SettlementService {
	if rail == nil {
		return service.NewSettlementService(store, nil)
	}
	return service.NewSettlementService(store, rail)
}

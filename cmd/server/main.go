package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roamly/roamly/internal/auth"
	"github.com/roamly/roamly/internal/config"
	roamlyhttp "github.com/roamly/roamly/internal/http"
	"github.com/roamly/roamly/internal/service"
	"github.com/roamly/roamly/internal/storage/sqlite"
	"github.com/roamly/roamly/pkg/logging"
)

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	svcs := roamlyhttp.Services{
		Auth:       service.NewAuthService(store, authenticator, jwtManager),
		Trip:       service.NewTripService(store),
		Expense:    service.NewExpenseService(store),
		Balance:    service.NewBalanceService(store),
		Settlement: service.NewSettlementService(store),
		Choice:     service.NewChoiceService(store),
		Kit:        service.NewKitService(store),
		JWT:        jwtManager,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      roamlyhttp.NewRouter(cfg, svcs),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "app", cfg.App.Name, "addr", srv.Addr, "db", cfg.DB.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/biztime/internal/company"
	companyStore "github.com/MrJamesThe3rd/biztime/internal/company/store"
	"github.com/MrJamesThe3rd/biztime/internal/config"
	"github.com/MrJamesThe3rd/biztime/internal/database"
	bizHttp "github.com/MrJamesThe3rd/biztime/internal/http"
	companyHandler "github.com/MrJamesThe3rd/biztime/internal/http/company"
	importHandler "github.com/MrJamesThe3rd/biztime/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/biztime/internal/http/invoice"
	"github.com/MrJamesThe3rd/biztime/internal/importer"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/biztime/internal/invoice/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var (
		companyService = company.NewService(companyStore.New(db))
		invoiceService = invoice.NewService(invoiceStore.New(db), companyService)
		importService  = importer.NewService(invoiceService)
	)

	var (
		companyH = companyHandler.NewHandler(companyService)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
		importH  = importHandler.NewHandler(importService)
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      bizHttp.New(companyH, invoiceH, importH, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

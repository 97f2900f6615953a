package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fund_backend/internal/app/router"
	schemeshandler "fund_backend/internal/feature/schemes/transport/handler"
	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerhandler "fund_backend/internal/feature/screener/transport/handler"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
	"fund_backend/internal/platform/http/handler"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheme and stock endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	// ストアが無くても読み取り系エンドポイントは動作する
	var ping handler.Pinger
	stores := a.openStores(ctx)
	defer closeStores(stores)
	if stores != nil {
		ping = stores.Ping
	} else {
		slog.Warn("document store unavailable; /healthz will report it")
		ping = func(context.Context) error { return errors.New("document store unavailable") }
	}

	schemes := a.deps.Schemes(a.cfg, schemesusecase.DocumentStore(nil))
	screener := a.deps.Screener(a.cfg, screenerusecase.DocumentStore(nil))
	r := router.NewRouter(
		schemeshandler.NewSchemeHandler(schemes, a.reportOptions()),
		screenerhandler.NewScreenerHandler(screener),
		ping,
	)

	srv := &http.Server{Addr: a.cfg.Server.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

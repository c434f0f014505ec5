// Command seqdiff-server provides a REST API for sequence comparison.
//
// Usage:
//
//	seqdiff-server [options]
//
// Options:
//
//	--addr       Address to listen on (default: :8080)
//	--config     Config file (default: ./seqdiff.yaml)
//	--timeout    Per-request timeout (default: 60s)
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
	"time"

	"github.com/aria-lang/seqdiff-go/api/handlers"
	"github.com/aria-lang/seqdiff-go/api/middleware"
	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/config"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seqdiff-server",
		Short:        "Serve sequence comparisons over HTTP",
		Version:      seqdiff.Version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runServer,
	}

	p := alignment.DefaultPenalties()
	flags := cmd.Flags()
	flags.StringP("config", "c", "", "config file (default ./seqdiff.yaml or ~/.config/seqdiff/seqdiff.yaml)")
	flags.String("addr", ":8080", "address to listen on")
	flags.Duration("timeout", 60*time.Second, "per-request timeout")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("mode", alignment.Dovetail.String(), "end handling: dovetail, bounded or global")
	flags.Bool("translate", false, "count codon-level errors")
	flags.Int("indel", p.Indel, "penalty of an insertion or deletion")
	flags.Int("substitution", p.Substitution, "penalty of a definite mismatch")
	flags.Int("ambiguity", p.Ambiguity, "penalty of a mismatch compatible through an ambiguity code")
	return cmd
}

func runServer(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(v, path)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.Level()}))

	router, err := newRouter(c, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         c.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: c.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serve(cmd.Context(), server, logger)
}

// newRouter wires the middleware stack, the API and the operational
// endpoints around one shared engine.
func newRouter(c *config.Config, logger *slog.Logger) (http.Handler, error) {
	engineCfg, err := c.Engine(logger)
	if err != nil {
		return nil, err
	}
	engine, err := seqdiff.New(engineCfg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(c.Server.Timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	api := handlers.New(engine, logger, handlers.Limits{
		MaxSequenceLength: c.SequenceLimit(),
		MaxBodyBytes:      c.Server.MaxBodyBytes,
	})
	r.Route("/api", api.Routes)

	logger.Info("engine ready",
		"mode", engine.Mode().String(),
		"penalties", fmt.Sprintf("%+v", engine.Penalties()),
		"translate", c.Translate)
	return r, nil
}

// serve runs server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("seqdiff API server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen on %s: %w", server.Addr, err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	server.SetKeepAlivesEnabled(false)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not gracefully shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

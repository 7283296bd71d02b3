package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-autocomplete/internal/demo"
	"github.com/goliatone/go-autocomplete/internal/logging"
)

var (
	addr          string
	rendererName  string
	themeVariant  string
	router        string
	shutdownGrace time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the team form over HTTP",
	Example: `  # Serve on :8383 with the plain renderer
  autocomplete-demo serve

  # Themed widgets, dark variant, gin router
  autocomplete-demo serve --renderer htmx-themed --variant dark --router gin`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8383", "HTTP listen address")
	serveCmd.Flags().StringVar(&rendererName, "renderer", demo.RendererPlain, "Renderer name (htmx, htmx-themed)")
	serveCmd.Flags().StringVar(&themeVariant, "variant", "", "Theme variant for the themed renderer")
	serveCmd.Flags().StringVar(&router, "router", demo.RouterMux, "HTTP router (mux, gin)")
	serveCmd.Flags().DurationVar(&shutdownGrace, "grace", 5*time.Second, "Shutdown grace period")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := appOptions()
	opts.Renderer = rendererName
	opts.Variant = themeVariant
	opts.Router = router
	if router == demo.RouterGin {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := demo.New(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	h, err := app.Handler()
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("listening",
		zap.String("addr", addr),
		zap.String("renderer", app.Renderer.Name()),
		zap.String("router", router),
		zap.String("base_path", opts.BasePath),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("shutdown", zap.Error(err))
	}
	return nil
}

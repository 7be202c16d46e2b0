// Command form fills in the signup form from a terminal and submits it to
// the server named by FORM_SERVER_URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"signup-form/internal/client"
	"signup-form/internal/client/tui"
	"signup-form/internal/config"
	"signup-form/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// prompts own stdout, logs go to stderr
	appLogger := logger.NewWithWriter(cfg.App.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	submitter := client.NewHTTPSubmitter(cfg.Client.ServerURL, cfg.Client.Timeout)
	form := client.NewForm(submitter, appLogger.Logger)
	renderer := tui.NewRenderer(form, tui.NewSurveyDriver(os.Stdout))

	outcome, err := renderer.Run(ctx)
	appLogger.Debug("Form session finished", "outcome", outcome.String())
	return err
}

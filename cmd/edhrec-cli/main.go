package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"edhrec-tracker/cmd/edhrec-cli/commands"
	"edhrec-tracker/lib/serviceutil"
	"edhrec-tracker/lib/telemetry"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "edhrec-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	err = commands.ExecuteContext(ctx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if shutdownErr := tel.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

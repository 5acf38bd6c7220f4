package commands

import (
	"log/slog"
	"time"

	"edhrec-tracker/internal/resolve"
	"edhrec-tracker/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	resolveData   *string
	resolveImages *string
	resolvePace   *time.Duration
)

func init() {
	resolveData = resolveCmd.Flags().String("data", "", "The card data table to read, overrides card_data_path.")
	resolveImages = resolveCmd.Flags().String("images", "", "The card image table to update, overrides card_images_path.")
	resolvePace = resolveCmd.Flags().Duration("pace", 0, "The delay after every card page fetch, overrides pace_ms.")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [--data <card_data.csv>] [--images <card_images.csv>] [--pace <duration>]",
	Short: "Finds an image for every card of the card data table that doesn't have one yet.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		if flags.Changed("data") {
			cfg.CardDataPath = *resolveData
		}
		if flags.Changed("images") {
			cfg.CardImagesPath = *resolveImages
		}
		pace := cfg.Pace()
		if flags.Changed("pace") {
			pace = *resolvePace
		}

		clock, err := newClock()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		tel := newTelemetry()
		r := resolve.NewResolver(newClient(tel), clock, tel, pace)

		slog.Info("resolving card images", "data", cfg.CardDataPath, "images", cfg.CardImagesPath)
		start := time.Now()
		summary, err := r.RunFiles(cmd.Context(), cfg.CardDataPath, cfg.CardImagesPath)
		if err != nil {
			serviceutil.Fatal("failed to resolve card images", err)
		}

		renderSummary(cmd.Context(), "resolve", time.Since(start), []summaryRow{
			{"cards", summary.Cards},
			{"already present", summary.Present},
			{"resolved", summary.Resolved},
			{"no image", summary.Unmatched},
			{"failed", summary.Failed},
		})
		slog.Info("card images saved", "path", cfg.CardImagesPath)
	},
}

package commands

import (
	"log/slog"
	"time"

	"edhrec-tracker/internal/harvest"
	"edhrec-tracker/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	harvestCommanders *string
	harvestOut        *string
	harvestUpsert     *bool
	harvestCheckpoint *bool
)

func init() {
	harvestCommanders = harvestCmd.Flags().String("commanders", "", "The commander source table, overrides commanders_path.")
	harvestOut = harvestCmd.Flags().String("out", "", "The card data table to write to, overrides card_data_path.")
	harvestUpsert = harvestCmd.Flags().Bool("upsert", false, "Replace rows with the same commander, date and name instead of appending.")
	harvestCheckpoint = harvestCmd.Flags().Bool("checkpoint", false, "Persist after every commander instead of once at the end.")
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [--commanders <Commanders.csv>] [--out <card_data.csv>] [--upsert] [--checkpoint]",
	Short: "Fetches every commander page and appends its card inclusion statistics to the card data table.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		if flags.Changed("commanders") {
			cfg.CommandersPath = *harvestCommanders
		}
		if flags.Changed("out") {
			cfg.CardDataPath = *harvestOut
		}
		if flags.Changed("upsert") {
			cfg.Upsert = *harvestUpsert
		}
		if flags.Changed("checkpoint") {
			cfg.Checkpoint = *harvestCheckpoint
		}

		clock, err := newClock()
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		tel := newTelemetry()
		h := harvest.NewHarvester(newClient(tel), clock, tel, harvest.Options{
			Origin:     cfg.SiteOrigin,
			OutputPath: cfg.CardDataPath,
			Upsert:     cfg.Upsert,
			Checkpoint: cfg.Checkpoint,
		})

		slog.Info("harvesting commanders", "commanders", cfg.CommandersPath, "out", cfg.CardDataPath)
		start := time.Now()
		summary, err := h.RunFile(cmd.Context(), cfg.CommandersPath)
		if err != nil {
			serviceutil.Fatal("failed to harvest commanders", err)
		}

		renderSummary(cmd.Context(), "harvest", time.Since(start), []summaryRow{
			{"commanders", summary.Commanders},
			{"harvested", summary.Harvested},
			{"skipped", summary.Skipped},
			{"records", summary.Records},
		})
		slog.Info("card data saved", "path", cfg.CardDataPath)
	},
}

package commands

import (
	"log/slog"

	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/lib/serviceutil"

	"github.com/spf13/cobra"
)

var exportDb *string

func init() {
	exportDb = exportCmd.Flags().String("db", "edhrec.db", "The sqlite database to export to.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/output.db>]",
	Short: "Mirrors the card data and card image tables into a sqlite database.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		records, err := dataset.LoadCardData(cfg.CardDataPath)
		if err != nil {
			serviceutil.Fatal("failed to read card data", err)
		}
		images, err := dataset.LoadImageTable(cfg.CardImagesPath)
		if err != nil {
			serviceutil.Fatal("failed to read card images", err)
		}

		db, err := dataset.OpenSQLite(*exportDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer db.Close()

		err = dataset.ExportSQLite(cmd.Context(), db, records, images.Records())
		if err != nil {
			serviceutil.Fatal("failed to export", err)
		}
		slog.Info("exported", "db", *exportDb, "cards", len(records), "images", images.Len())
	},
}

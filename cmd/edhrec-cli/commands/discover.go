package commands

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var discoverOut *string

func init() {
	discoverOut = discoverCmd.Flags().String("out", "", "The commander source table to merge into, overrides commanders_path.")
	rootCmd.AddCommand(discoverCmd)
}

// mergeCommanders appends the discovered commanders whose url is not
// already in `existing`, existing rows are kept as they are.
func mergeCommanders(existing []dataset.CommanderSource, discovered []edhrec.Commander) ([]dataset.CommanderSource, []dataset.CommanderSource) {
	known := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		known[s.PageURL] = struct{}{}
	}

	merged := append([]dataset.CommanderSource(nil), existing...)
	var added []dataset.CommanderSource
	for _, c := range discovered {
		if _, ok := known[c.URL]; ok {
			continue
		}
		known[c.URL] = struct{}{}
		source := dataset.CommanderSource{CommanderName: c.Name, PageURL: c.URL}
		merged = append(merged, source)
		added = append(added, source)
	}
	return merged, added
}

var discoverCmd = &cobra.Command{
	Use:   "discover [listing-url] [--out <Commanders.csv>]",
	Short: "Adds the commander pages linked from a listing page to the commander source table.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("out") {
			cfg.CommandersPath = *discoverOut
		}
		listing := strings.TrimSuffix(cfg.SiteOrigin, "/") + "/commanders"
		if len(args) > 0 {
			listing = args[0]
		}

		existing, err := dataset.LoadCommanders(cfg.CommandersPath)
		if errors.Is(err, os.ErrNotExist) {
			existing = nil
		} else if err != nil {
			serviceutil.Fatal("failed to read commander sources", err)
		}

		tel := newTelemetry()
		discovered, err := edhrec.DiscoverCommanders(cmd.Context(), newClient(tel), listing, cfg.SiteOrigin)
		if err != nil {
			serviceutil.Fatal("failed to discover commanders", err)
		}

		merged, added := mergeCommanders(existing, discovered)
		err = dataset.SaveCommanders(cfg.CommandersPath, merged)
		if err != nil {
			serviceutil.Fatal("failed to save commander sources", err)
		}

		t := newTable(os.Stdout)
		t.AppendHeader(table.Row{"Commander", "url"})
		for _, s := range added {
			t.AppendRow(table.Row{s.CommanderName, s.PageURL})
		}
		t.Render()
		slog.Info("commander sources saved", "path", cfg.CommandersPath, "discovered", len(discovered), "added", len(added))
	},
}

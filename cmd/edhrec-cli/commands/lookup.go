package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/lib/serviceutil"
	"edhrec-tracker/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const suggestionLimit = 5

func init() {
	rootCmd.AddCommand(lookupCmd)
}

// lookup prints the image of `name` or, when there is no exact match, the
// closest names in the table.
func lookup(out io.Writer, images *dataset.ImageTable, name string) bool {
	image, ok := images.Get(name)
	if ok {
		fmt.Fprintln(out, image)
		return true
	}

	suggestions := textutil.Closest(name, images.Names(), suggestionLimit)
	if len(suggestions) == 0 {
		fmt.Fprintf(out, "no image for %q\n", name)
		return false
	}
	fmt.Fprintf(out, "no image for %q, did you mean:\n", name)
	t := newTable(out)
	t.AppendHeader(table.Row{"Name", "Similarity"})
	for _, m := range suggestions {
		t.AppendRow(table.Row{m.Name, fmt.Sprintf("%.2f", m.Similarity)})
	}
	t.Render()
	return false
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <card name>",
	Short: "Prints the image of a card from the card image table.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		images, err := dataset.LoadImageTable(cfg.CardImagesPath)
		if err != nil {
			serviceutil.Fatal("failed to read card images", err)
		}
		lookup(os.Stdout, images, strings.Join(args, " "))
	},
}

package resolve

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "embed"

	"edhrec-tracker/internal/chrono"
	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/internal/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/sol_ring.html
var solRingPage string

type fakeFetcher struct {
	bodies map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (edhrec.Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return edhrec.Page{URL: url}, err
	}
	body, ok := f.bodies[url]
	if !ok {
		return edhrec.Page{URL: url, Status: http.StatusNotFound}, &edhrec.FetchError{URL: url, Status: http.StatusNotFound}
	}
	return edhrec.Page{URL: url, Status: http.StatusOK, Body: body}, nil
}

func newFetcher(bodies map[string]string) *fakeFetcher {
	return &fakeFetcher{bodies: bodies, errs: map[string]error{}}
}

var now = time.Date(2025, time.April, 26, 9, 30, 0, 0, time.UTC)

func readFile(t *testing.T, path string) string {
	t.Helper()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(contents)
}

func TestDistinctCards(t *testing.T) {
	refs := []dataset.CardRef{
		{Name: "Sol Ring", URL: "https://edhrec.com/cards/sol-ring"},
		{Name: "Arcane Signet", URL: "https://edhrec.com/cards/arcane-signet"},
		{Name: "Sol Ring", URL: "https://edhrec.com/cards/sol-ring-duplicate"},
		{Name: "sol ring", URL: "https://edhrec.com/cards/sol-ring-lower"},
	}
	expected := []dataset.CardRef{
		{Name: "Sol Ring", URL: "https://edhrec.com/cards/sol-ring"},
		{Name: "Arcane Signet", URL: "https://edhrec.com/cards/arcane-signet"},
		{Name: "sol ring", URL: "https://edhrec.com/cards/sol-ring-lower"},
	}
	if diff := cmp.Diff(expected, DistinctCards(refs)); diff != "" {
		t.Fatalf("distinct cards mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverSkipsPresentNames(t *testing.T) {
	fetcher := newFetcher(map[string]string{
		"https://edhrec.com/cards/arcane-signet": `"image_uris":[{"normal":"https://img/arcane-signet.jpg"}]`,
	})
	clock := chrono.NewFakeImpl(now)
	r := NewResolver(fetcher, clock, &telemetry.Recorder{}, DefaultPace)

	table := dataset.NewImageTable()
	table.Add("Sol Ring", "https://img/sol-ring.jpg")

	summary, err := r.Run(context.Background(), []dataset.CardRef{
		{Name: "Sol Ring", URL: "https://edhrec.com/cards/sol-ring"},
		{Name: "Arcane Signet", URL: "https://edhrec.com/cards/arcane-signet"},
	}, table)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []string{"https://edhrec.com/cards/arcane-signet"}, fetcher.calls)
	require.Equal(t, Summary{Cards: 2, Present: 1, Resolved: 1}, summary)
	require.Equal(t, []time.Duration{DefaultPace}, clock.Sleeps())

	image, ok := table.Get("Sol Ring")
	require.True(t, ok)
	require.Equal(t, "https://img/sol-ring.jpg", image)
}

func TestResolverTakesLastImage(t *testing.T) {
	fetcher := newFetcher(map[string]string{
		"u/sol-ring": `... "image_uris":[{"normal":"U1"}] ... "image_uris":[{"normal":"U2"}] ...`,
		"u/page":     solRingPage,
	})
	r := NewResolver(fetcher, chrono.NewFakeImpl(now), &telemetry.Recorder{}, DefaultPace)

	table := dataset.NewImageTable()
	_, err := r.Run(context.Background(), []dataset.CardRef{
		{Name: "Sol Ring", URL: "u/sol-ring"},
		{Name: "Sol Ring Page", URL: "u/page"},
	}, table)
	if err != nil {
		t.Fatal(err)
	}

	image, ok := table.Get("Sol Ring")
	require.True(t, ok)
	require.Equal(t, "U2", image)

	image, ok = table.Get("Sol Ring Page")
	require.True(t, ok)
	require.Equal(t, "https://cards.scryfall.io/normal/front/1/9/latest-printing.jpg", image)
}

func TestResolverFailuresContinue(t *testing.T) {
	fetcher := newFetcher(map[string]string{
		"u/no-image": "<html>no printings</html>",
		"u/signet":   `"image_uris":[{"normal":"https://img/signet.jpg"}]`,
	})
	fetcher.errs["u/offline"] = &edhrec.FetchError{URL: "u/offline", Err: errors.New("connection reset")}
	clock := chrono.NewFakeImpl(now)
	rec := &telemetry.Recorder{}
	r := NewResolver(fetcher, clock, rec, 250*time.Millisecond)

	table := dataset.NewImageTable()
	summary, err := r.Run(context.Background(), []dataset.CardRef{
		{Name: "Missing", URL: "u/missing"},
		{Name: "Offline", URL: "u/offline"},
		{Name: "No Image", URL: "u/no-image"},
		{Name: "Arcane Signet", URL: "u/signet"},
	}, table)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Summary{Cards: 4, Resolved: 1, Unmatched: 1, Failed: 2}, summary)
	require.Equal(t, []string{"Arcane Signet"}, table.Names())
	require.Equal(t, []string{"resolver.fetch", "resolver.fetch"}, rec.IDs(telemetry.KindBroken))
	require.Equal(t, []string{"resolver.extract-image"}, rec.IDs(telemetry.KindWarning))

	// every fetch attempt is paced, failed or not
	require.Len(t, clock.Sleeps(), 4)
	require.Equal(t, now.Add(time.Second), clock.Now())
}

func TestResolverCancelled(t *testing.T) {
	fetcher := newFetcher(map[string]string{"u/signet": `"image_uris":[{"normal":"https://img/signet.jpg"}]`})
	r := NewResolver(fetcher, chrono.NewFakeImpl(now), &telemetry.Recorder{}, DefaultPace)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, []dataset.CardRef{
		{Name: "Arcane Signet", URL: "u/signet"},
		{Name: "Sol Ring", URL: "u/sol-ring"},
	}, dataset.NewImageTable())
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, fetcher.calls, 1)
}

func TestRunFilesIsStable(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "card_data.csv")
	imagesPath := filepath.Join(dir, "card_images.csv")

	err := dataset.AppendCardData(dataPath, []dataset.CardInclusionRecord{
		{Commander: "Atraxa", Date: "2025-04-26", Name: "Sol Ring", Inclusion: "high", Label: "98%", URL: "u/sol-ring", Header: "Mana Artifacts"},
		{Commander: "Edgar Markov", Date: "2025-04-26", Name: "Sol Ring", Inclusion: "high", Label: "97%", URL: "u/sol-ring", Header: "Mana Artifacts"},
		{Commander: "Atraxa", Date: "2025-04-26", Name: "Arcane Signet", Inclusion: "high", Label: "90%", URL: "u/signet", Header: "Mana Artifacts"},
	})
	if err != nil {
		t.Fatal(err)
	}

	fetcher := newFetcher(map[string]string{
		"u/sol-ring": solRingPage,
		"u/signet":   `"image_uris":[{"normal":"https://img/signet.jpg"}]`,
	})
	r := NewResolver(fetcher, chrono.NewFakeImpl(now), &telemetry.Recorder{}, DefaultPace)

	summary, err := r.RunFiles(context.Background(), dataPath, imagesPath)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Summary{Cards: 2, Resolved: 2}, summary)
	first := readFile(t, imagesPath)
	require.Equal(t,
		"Name,Image\n"+
			"Sol Ring,https://cards.scryfall.io/normal/front/1/9/latest-printing.jpg\n"+
			"Arcane Signet,https://img/signet.jpg\n",
		first,
	)

	summary, err = r.RunFiles(context.Background(), dataPath, imagesPath)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Summary{Cards: 2, Present: 2}, summary)
	require.Equal(t, first, readFile(t, imagesPath))
	require.Len(t, fetcher.calls, 2)
}

func TestRunFilesMissingCardData(t *testing.T) {
	dir := t.TempDir()
	imagesPath := filepath.Join(dir, "card_images.csv")
	r := NewResolver(newFetcher(nil), chrono.NewFakeImpl(now), &telemetry.Recorder{}, DefaultPace)

	_, err := r.RunFiles(context.Background(), filepath.Join(dir, "card_data.csv"), imagesPath)
	require.ErrorIs(t, err, dataset.ErrConfig)

	_, err = os.Stat(imagesPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

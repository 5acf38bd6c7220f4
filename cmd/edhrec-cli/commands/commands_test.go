package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/lib/configutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	loaded, err := configutil.ReadConfigWithDefaults(filepath.Join(dir, "config.json5"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, DefaultConfig(), loaded)

	err = os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// slower pacing for the image resolver
		pace_ms: 500,
		upsert: true,
		card_data_path: "out/card_data.csv",
	}`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err = configutil.ReadConfigWithDefaults(filepath.Join(dir, "config.json5"), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 500, loaded.PaceMs)
	require.True(t, loaded.Upsert)
	require.Equal(t, "out/card_data.csv", loaded.CardDataPath)
	require.Equal(t, "Commanders.csv", loaded.CommandersPath)
	require.Equal(t, edhrec.DefaultOrigin, loaded.SiteOrigin)
}

func TestMergeCommanders(t *testing.T) {
	existing := []dataset.CommanderSource{
		{CommanderName: "Atraxa (hand picked)", PageURL: "https://edhrec.com/commanders/atraxa-praetors-voice"},
	}
	discovered := []edhrec.Commander{
		{Name: "Atraxa, Praetors' Voice", URL: "https://edhrec.com/commanders/atraxa-praetors-voice"},
		{Name: "The Ur-Dragon", URL: "https://edhrec.com/commanders/the-ur-dragon"},
		{Name: "The Ur-Dragon", URL: "https://edhrec.com/commanders/the-ur-dragon"},
	}

	merged, added := mergeCommanders(existing, discovered)
	expected := []dataset.CommanderSource{
		{CommanderName: "Atraxa (hand picked)", PageURL: "https://edhrec.com/commanders/atraxa-praetors-voice"},
		{CommanderName: "The Ur-Dragon", PageURL: "https://edhrec.com/commanders/the-ur-dragon"},
	}
	if diff := cmp.Diff(expected, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, expected[1:], added)
}

func TestLookup(t *testing.T) {
	images := dataset.NewImageTable()
	images.Add("Sol Ring", "https://img/sol-ring.jpg")
	images.Add("Arcane Signet", "https://img/arcane-signet.jpg")

	var out bytes.Buffer
	require.True(t, lookup(&out, images, "Sol Ring"))
	require.Equal(t, "https://img/sol-ring.jpg\n", out.String())

	out.Reset()
	require.False(t, lookup(&out, images, "sol rng"))
	require.Contains(t, out.String(), "did you mean")
	require.Contains(t, out.String(), "Sol Ring")

	out.Reset()
	require.False(t, lookup(&out, dataset.NewImageTable(), "Sol Ring"))
	require.Equal(t, "no image for \"Sol Ring\"\n", out.String())
}

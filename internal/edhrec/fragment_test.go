package edhrec

import (
	"encoding/json"
	"strings"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/commander_page.html
var commanderPage string

func TestLocate(t *testing.T) {
	raw, ok := Locate(`<script>{"a":1,"json_dict":{"cardlists":[]}}</script>`)
	require.True(t, ok)
	require.Equal(t, `{"cardlists":[]}}</script>`, raw)

	_, ok = Locate("<html><body>rate limited</body></html>")
	require.False(t, ok)
}

func TestRepairTextMatchesManualRepair(t *testing.T) {
	raw, ok := Locate(commanderPage)
	require.True(t, ok)

	idx := strings.Index(raw, `],"card":`)
	require.Greater(t, idx, 0)
	manual := raw[:idx] + "]}"

	repaired := RepairText(raw)
	require.Equal(t, manual, repaired)
	require.True(t, json.Valid([]byte(repaired)))
}

func TestRepairTextWithoutTerminator(t *testing.T) {
	require.Equal(t, `{"cardlists":[{"header":"Lands"}]}`, RepairText(`{"cardlists":[{"header":"Lands"}`))
}

func TestRepairArrayPayload(t *testing.T) {
	raw := `[{"header":"High Synergy Cards","cardviews":[{"name":"Solemn Simulacrum","inclusion":"high","label":"62% of 3012 decks","url":"/cards/solemn-simulacrum"}]}],"card":{"name":"Atraxa"}}`

	payload, err := Repair(raw)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, payload.Cardlists, 1)
	list := payload.Cardlists[0]
	require.Equal(t, "High Synergy Cards", list.Header.Or("Unknown"))
	require.Len(t, list.Cardviews, 1)
	require.Equal(t, "high", list.Cardviews[0].Inclusion.Value)
}

func TestRepairErrors(t *testing.T) {
	table := []string{
		`{"cardlists":[{"header":`,
		`"just a string"],"card":`,
		`{"cardlists":[{"header":"Lands"}]},"other":[1],"card":`,
		``,
	}

	for _, raw := range table {
		_, err := Repair(raw)
		require.ErrorIs(t, err, ErrParse, "raw: %q", raw)
	}
}

func TestExtractCardlists(t *testing.T) {
	lists, err := ExtractCardlists(commanderPage)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, lists, 2)

	synergy := lists[0]
	require.Equal(t, Field{Value: "High Synergy Cards", Valid: true}, synergy.Header)
	require.Len(t, synergy.Cardviews, 1)
	solemn := synergy.Cardviews[0]
	require.Equal(t, "Solemn Simulacrum", solemn.Name.Value)
	require.Equal(t, "1872", solemn.Inclusion.Value)
	require.Equal(t, "62% of 3012 decks\n+12% synergy", solemn.Label.Value)
	require.Equal(t, "/cards/solemn-simulacrum", solemn.URL.Value)

	artifacts := lists[1]
	require.False(t, artifacts.Header.Valid)
	require.Len(t, artifacts.Cardviews, 2)
	mystery := artifacts.Cardviews[1]
	require.Equal(t, "Mystery Card", mystery.Name.Or("N/A"))
	require.False(t, mystery.Label.Valid)
	require.False(t, mystery.URL.Valid)
	require.False(t, mystery.Inclusion.Valid)
}

func TestExtractCardlistsNotFound(t *testing.T) {
	_, err := ExtractCardlists("<html></html>")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFieldUnmarshal(t *testing.T) {
	var view Cardview
	err := json.Unmarshal([]byte(`{"name":"Sol Ring","inclusion":12,"label":true,"url":null}`), &view)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, Field{Value: "Sol Ring", Valid: true}, view.Name)
	require.Equal(t, Field{Value: "12", Valid: true}, view.Inclusion)
	require.Equal(t, Field{Value: "true", Valid: true}, view.Label)
	require.Equal(t, Field{}, view.URL)
	require.Equal(t, "fallback", view.URL.Or("fallback"))
}

package edhrec

import (
	"context"
	"testing"

	_ "embed"

	"github.com/google/go-cmp/cmp"
)

//go:embed testdata/commander_listing.html
var commanderListing string

type staticFetcher map[string]string

func (f staticFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	body, ok := f[url]
	if !ok {
		return Page{URL: url, Status: 404}, &FetchError{URL: url, Status: 404}
	}
	return Page{URL: url, Status: 200, Body: body}, nil
}

func TestDiscoverCommanders(t *testing.T) {
	fetcher := staticFetcher{"https://edhrec.com/commanders": commanderListing}

	commanders, err := DiscoverCommanders(context.Background(), fetcher, "https://edhrec.com/commanders", DefaultOrigin)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Commander{
		{Name: "Atraxa, Praetors' Voice", URL: "https://edhrec.com/commanders/atraxa-praetors-voice"},
		{Name: "The Ur Dragon", URL: "https://edhrec.com/commanders/the-ur-dragon"},
		{Name: "Edgar Markov", URL: "https://edhrec.com/commanders/edgar-markov"},
	}
	if diff := cmp.Diff(expected, commanders); diff != "" {
		t.Fatalf("commanders mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverCommandersFetchError(t *testing.T) {
	_, err := DiscoverCommanders(context.Background(), staticFetcher{}, "https://edhrec.com/commanders", DefaultOrigin)
	if err == nil {
		t.Fatal("expected an error")
	}
}

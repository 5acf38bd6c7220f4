package edhrec

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"edhrec-tracker/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Commander struct {
	Name string
	URL  string
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

var titleCaser = cases.Title(language.English)

// commanderSlug returns the slug of a commander page path, ex.
// "/commanders/atraxa-praetors-voice" -> "atraxa-praetors-voice". Theme
// and budget subpages of a commander are not commander pages.
func commanderSlug(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/commanders/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

// ParseCommanders collects the commander pages linked from a listing page,
// in page order, one per url. Links are resolved against `origin`.
func ParseCommanders(ctx context.Context, body string, origin string) ([]Commander, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var commanders []Commander
	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a[href]")) {
		if anchor.Href.Host != "" && anchor.Href.Host != base.Host {
			continue
		}
		slug, ok := commanderSlug(anchor.Href.Path)
		if !ok {
			continue
		}

		link := base.ResolveReference(&url.URL{Path: anchor.Href.Path}).String()
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		name := anchor.Name
		if name == "" {
			name = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
		}
		commanders = append(commanders, Commander{Name: name, URL: link})
	}
	return commanders, nil
}

// DiscoverCommanders fetches a listing page and parses the commander pages it links to.
func DiscoverCommanders(ctx context.Context, fetcher Fetcher, listingURL, origin string) ([]Commander, error) {
	page, err := fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	return ParseCommanders(ctx, page.Body, origin)
}

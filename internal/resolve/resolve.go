package resolve

import (
	"context"
	"time"

	"edhrec-tracker/internal/chrono"
	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("edhrec-tracker/internal/resolve")

// DefaultPace is the delay after every card page fetch.
const DefaultPace = 100 * time.Millisecond

// DistinctCards keeps the first ref of every name, in input order.
func DistinctCards(refs []dataset.CardRef) []dataset.CardRef {
	seen := make(map[string]struct{}, len(refs))
	distinct := make([]dataset.CardRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Name]; ok {
			continue
		}
		seen[ref.Name] = struct{}{}
		distinct = append(distinct, ref)
	}
	return distinct
}

type Summary struct {
	Cards     int
	Present   int
	Resolved  int
	Unmatched int
	Failed    int
}

type Resolver struct {
	fetch edhrec.Fetcher
	clock chrono.API
	tel   telemetry.API
	pace  time.Duration
}

// NewResolver creates a Resolver, a negative `pace` means DefaultPace.
func NewResolver(fetch edhrec.Fetcher, clock chrono.API, tel telemetry.API, pace time.Duration) *Resolver {
	if pace < 0 {
		pace = DefaultPace
	}
	return &Resolver{
		fetch: fetch,
		clock: clock,
		tel:   telemetry.NewScopedAPI("resolver", tel),
		pace:  pace,
	}
}

// Run adds an image to `table` for every card that does not have one yet.
//
// Cards already in the table are never fetched. A card whose page can't be
// fetched or has no image is left out of the table so the next run retries it.
func (r *Resolver) Run(ctx context.Context, cards []dataset.CardRef, table *dataset.ImageTable) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	var summary Summary
	for _, card := range cards {
		summary.Cards++
		if table.Has(card.Name) {
			summary.Present++
			continue
		}

		page, err := r.fetch.Fetch(ctx, card.URL)
		if sleepErr := r.clock.Sleep(ctx, r.pace); sleepErr != nil {
			return summary, sleepErr
		}
		if err != nil {
			r.tel.ReportBroken("fetch", "name", card.Name, "url", card.URL, "err", err)
			summary.Failed++
			continue
		}

		image, ok := edhrec.ExtractImageURL(page.Body)
		if !ok {
			r.tel.ReportWarning("extract-image", "name", card.Name, "url", card.URL)
			summary.Unmatched++
			continue
		}
		table.Add(card.Name, image)
		summary.Resolved++
		r.tel.ReportDebug("resolved image", "name", card.Name, "image", image)
	}

	span.SetAttributes(
		attribute.Int("cards", summary.Cards),
		attribute.Int("resolved", summary.Resolved),
	)
	r.tel.ReportCount("resolved", int64(summary.Resolved))
	r.tel.ReportCount("failed", int64(summary.Failed+summary.Unmatched))

	return summary, nil
}

// RunFiles resolves the distinct cards of card_data.csv at `dataPath` and
// rewrites card_images.csv at `imagesPath` in full. Nothing is written if
// the run does not complete.
func (r *Resolver) RunFiles(ctx context.Context, dataPath, imagesPath string) (Summary, error) {
	refs, err := dataset.LoadCardRefs(dataPath)
	if err != nil {
		return Summary{}, err
	}
	table, err := dataset.LoadImageTable(imagesPath)
	if err != nil {
		return Summary{}, err
	}

	summary, err := r.Run(ctx, DistinctCards(refs), table)
	if err != nil {
		return summary, err
	}
	err = table.Save(imagesPath)
	if err != nil {
		return summary, err
	}
	return summary, nil
}

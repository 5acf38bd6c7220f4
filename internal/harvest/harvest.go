package harvest

import (
	"context"
	"errors"
	"fmt"

	"edhrec-tracker/internal/chrono"
	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
	"edhrec-tracker/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("edhrec-tracker/internal/harvest")

type Options struct {
	// Origin is prepended to every relative card url, defaults to edhrec.DefaultOrigin.
	Origin string
	// OutputPath is the card_data.csv file records are persisted to.
	OutputPath string
	// Upsert replaces rows with the same (Commander, Date, Name) instead of appending.
	Upsert bool
	// Checkpoint persists each commander's records as soon as it is processed.
	Checkpoint bool
}

type Summary struct {
	Commanders int
	Harvested  int
	Skipped    int
	Records    int
}

type Harvester struct {
	fetch edhrec.Fetcher
	clock chrono.API
	tel   telemetry.API
	opts  Options
}

func NewHarvester(fetch edhrec.Fetcher, clock chrono.API, tel telemetry.API, opts Options) *Harvester {
	if opts.Origin == "" {
		opts.Origin = edhrec.DefaultOrigin
	}
	return &Harvester{
		fetch: fetch,
		clock: clock,
		tel:   telemetry.NewScopedAPI("harvester", tel),
		opts:  opts,
	}
}

// batch is the accumulator threaded through a run.
type batch struct {
	summary Summary
	records []dataset.CardInclusionRecord
}

// Run harvests every source in order and persists the records it produced.
//
// Item-scoped failures (fetch, missing marker, unparsable payload) are
// reported and the source is skipped. Without checkpointing nothing is
// written until every source has been processed, a cancelled run persists
// nothing.
func (h *Harvester) Run(ctx context.Context, sources []dataset.CommanderSource) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	date := chrono.RunDate(h.clock.Now())

	acc := batch{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return acc.summary, err
		}
		acc.summary.Commanders++

		records, ok := h.harvestOne(ctx, src, date)
		if !ok {
			acc.summary.Skipped++
			continue
		}
		acc.summary.Harvested++
		acc.summary.Records += len(records)

		if h.opts.Checkpoint {
			err := h.persist(records)
			if err != nil {
				return acc.summary, err
			}
			continue
		}
		acc.records = append(acc.records, records...)
	}

	if !h.opts.Checkpoint {
		err := h.persist(acc.records)
		if err != nil {
			return acc.summary, err
		}
	}

	span.SetAttributes(
		attribute.Int("commanders", acc.summary.Commanders),
		attribute.Int("records", acc.summary.Records),
	)
	h.tel.ReportCount("records", int64(acc.summary.Records))
	h.tel.ReportCount("skipped", int64(acc.summary.Skipped))

	return acc.summary, nil
}

func (h *Harvester) harvestOne(ctx context.Context, src dataset.CommanderSource, date string) ([]dataset.CardInclusionRecord, bool) {
	h.tel.ReportDebug("fetching commander page", "commander", src.CommanderName, "url", src.PageURL)

	page, err := h.fetch.Fetch(ctx, src.PageURL)
	if err != nil {
		h.tel.ReportBroken("fetch", "commander", src.CommanderName, "url", src.PageURL, "err", err)
		return nil, false
	}

	lists, err := edhrec.ExtractCardlists(page.Body)
	switch {
	case errors.Is(err, edhrec.ErrNotFound):
		h.tel.ReportWarning("locate", "commander", src.CommanderName, "url", src.PageURL)
		return nil, false
	case err != nil:
		h.tel.ReportBroken("parse", "commander", src.CommanderName, "url", src.PageURL, "err", err)
		return nil, false
	}

	records := toRecords(src.CommanderName, date, h.opts.Origin, lists)
	h.tel.ReportDebug("harvested commander page", "commander", src.CommanderName, "records", len(records))
	return records, true
}

func (h *Harvester) persist(records []dataset.CardInclusionRecord) error {
	var err error
	if h.opts.Upsert {
		err = dataset.UpsertCardData(h.opts.OutputPath, records)
	} else {
		err = dataset.AppendCardData(h.opts.OutputPath, records)
	}
	if err != nil {
		return fmt.Errorf("persist card data: %w", err)
	}
	return nil
}

// RunFile loads the commander sources at `commandersPath` and runs them.
// A missing file or column is a *dataset.ConfigError and nothing is written.
func (h *Harvester) RunFile(ctx context.Context, commandersPath string) (Summary, error) {
	sources, err := dataset.LoadCommanders(commandersPath)
	if err != nil {
		return Summary{}, err
	}
	return h.Run(ctx, sources)
}

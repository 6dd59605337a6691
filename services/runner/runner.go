// Package runner drives one end-to-end capture: render, extract, persist,
// optionally publish.
package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Melvillian/after-market/internal/dom"
	"github.com/Melvillian/after-market/internal/extract"
	"github.com/Melvillian/after-market/internal/pagesource"
	"github.com/Melvillian/after-market/logger"
	apperr "github.com/Melvillian/after-market/pkg/errors"
	"github.com/Melvillian/after-market/services/publisher"
	"github.com/Melvillian/after-market/services/store"
)

// batchKey is the stream field the batch JSON is published under
const batchKey = "b64_after_market"

// Runner composes a page source, the extractors, the store and an
// optional publisher into one capture run.
type Runner struct {
	source pagesource.Source
	store  store.Store
	pub    publisher.Publisher
	policy extract.LoserPolicy
	log    *logger.Logger
}

// New creates a runner. pub may be nil to disable batch fan-out.
func New(source pagesource.Source, st store.Store, pub publisher.Publisher, policy extract.LoserPolicy) *Runner {
	return &Runner{
		source: source,
		store:  st,
		pub:    pub,
		policy: policy,
		log:    logger.ForRunner(),
	}
}

// Run performs one capture. The batch timestamp is taken once here and
// threaded through both extractors, so every record in the batch shares
// it. Any extraction error aborts the run with zero persisted records.
func (r *Runner) Run(ctx context.Context) ([]extract.PriceChange, error) {
	capturedAt := time.Now().UTC()

	moversRoot, err := r.source.Subtree(ctx, pagesource.MoversSelector)
	if err != nil {
		return nil, err
	}

	tbody := dom.FindByTag(moversRoot, "TBODY")
	if tbody == nil {
		return nil, apperr.NewMissingField("movers container: no TBODY")
	}

	movers, err := extract.ExtractMovers(tbody, capturedAt, r.policy)
	if err != nil {
		return nil, err
	}

	quoteRoot, err := r.source.Subtree(ctx, pagesource.QuoteSelector)
	if err != nil {
		return nil, err
	}

	sp, err := extract.ExtractSP(quoteRoot, capturedAt)
	if err != nil {
		return nil, err
	}

	batch := extract.Assemble(capturedAt, movers, sp)

	if err := r.store.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}

	r.publish(batch)

	for _, rec := range batch {
		r.log.Info().
			Str("symbol", rec.Symbol).
			Float64("percentage", rec.Percentage).
			Msg("Captured")
	}
	r.log.Info().
		Int("records", len(batch)).
		Time("captured_at", capturedAt).
		Msg("Capture batch persisted")

	return batch, nil
}

// publish fans the batch out to the stream. The store is the system of
// record, so publish failures are logged and never fail the run.
func (r *Runner) publish(batch []extract.PriceChange) {
	if r.pub == nil {
		return
	}

	data, err := json.Marshal(batch)
	if err != nil {
		r.log.Warn().Err(err).Msg("Failed to marshal batch for publishing")
		return
	}

	if err := r.pub.Publish(batchKey, data); err != nil {
		r.log.Warn().Err(apperr.NewPublish("batch publish failed", err)).Msg("Publish failed")
		return
	}

	if err := r.pub.TrimStream(); err != nil {
		r.log.Warn().Err(err).Msg("Stream trim failed")
	}
}

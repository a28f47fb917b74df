// Package pipeline drives the single-writer projection loop: read the next
// event, apply it in its own transaction, advance the watermark, repeat.
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/metaprotocol"
	"github.com/louisbranch/mediagraph/internal/observability"
	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
	"github.com/louisbranch/mediagraph/internal/projection"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// Processor applies events strictly sequentially. There is exactly one
// writer; parallel application would break the read-modify-write handlers.
type Processor struct {
	store   storage.Store
	applier *projection.Applier
	tracker *metaprotocol.Tracker
	metrics *observability.Metrics
	log     zerolog.Logger
	tracer  trace.Tracer
}

// NewProcessor wires the projection loop.
func NewProcessor(store storage.Store, applier *projection.Applier, tracker *metaprotocol.Tracker, metrics *observability.Metrics, log zerolog.Logger) *Processor {
	return &Processor{
		store:   store,
		applier: applier,
		tracker: tracker,
		metrics: metrics,
		log:     log,
		tracer:  otel.Tracer("mediagraph/pipeline"),
	}
}

// Run consumes src until exhaustion. Events at or below the stored
// watermark are skipped, which makes replaying a stream from the beginning
// safe. Any fatal error stops the loop with the watermark still pointing at
// the last fully applied event.
func (p *Processor) Run(ctx context.Context, src Source) error {
	mark, err := p.store.GetWatermark(ctx)
	if err != nil {
		return err
	}
	initial := mark
	applied := mark

	for {
		evt, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := evt.Validate(); err != nil {
			return apperrors.Wrap(apperrors.CodeEventMalformed, "invalid event envelope", err)
		}

		if !evt.After(applied.BlockHeight, applied.IndexInBlock) {
			if !evt.After(initial.BlockHeight, initial.IndexInBlock) {
				p.metrics.EventsSkipped.Inc()
				p.log.Debug().Str("event_id", evt.ID()).Msg("skipping already applied event")
				continue
			}
			return apperrors.WithMetadata(apperrors.CodeEventOutOfOrder, "event stream not in chain order", map[string]string{
				"eventId":  evt.ID(),
				"previous": applied.String(),
			})
		}

		if !p.applier.Known(evt.Name) {
			p.metrics.EventsUnknown.Inc()
			p.log.Debug().Str("event", string(evt.Name)).Msg("no handler for event, skipping")
			continue
		}

		if err := p.processOne(ctx, evt); err != nil {
			return err
		}
		applied = storage.Watermark{BlockHeight: evt.BlockHeight, IndexInBlock: evt.IndexInBlock}
	}
}

func (p *Processor) processOne(ctx context.Context, evt event.Event) error {
	ctx, span := p.tracer.Start(ctx, "pipeline.apply",
		trace.WithAttributes(
			attribute.String("event.name", string(evt.Name)),
			attribute.Int64("event.block", int64(evt.BlockHeight)),
			attribute.Int("event.index", int(evt.IndexInBlock)),
		))
	defer span.End()

	isMetaprotocol := p.applier.Metaprotocol(evt.Name)
	if isMetaprotocol {
		// The pending row is written outside the event transaction so it
		// survives a rollback.
		if err := p.tracker.Open(ctx, evt); err != nil {
			return err
		}
	}

	start := time.Now()
	err := p.store.InTx(ctx, func(tx storage.Store) error {
		if err := p.applier.Apply(ctx, tx, evt); err != nil {
			return err
		}
		if isMetaprotocol {
			if err := p.tracker.ResolveSuccess(ctx, tx, evt); err != nil {
				return err
			}
		}
		return tx.SetWatermark(ctx, storage.Watermark{
			BlockHeight:  evt.BlockHeight,
			IndexInBlock: evt.IndexInBlock,
		})
	})
	p.metrics.ApplyDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if isMetaprotocol && apperrors.CodeOf(err) != apperrors.CodeInconsistentState {
			return p.resolveErrored(ctx, evt, err)
		}
		p.log.Error().Err(err).Str("event_id", evt.ID()).Str("event", string(evt.Name)).Msg("event application failed")
		return err
	}

	p.metrics.EventsApplied.WithLabelValues(string(evt.Name)).Inc()
	p.log.Info().Str("event", string(evt.Name)).Str("event_id", evt.ID()).Msg("event applied")
	return nil
}

// resolveErrored records a failed metaprotocol transaction and advances the
// watermark past the event. The remark had no effect on the graph; the
// failure itself is the projected outcome.
func (p *Processor) resolveErrored(ctx context.Context, evt event.Event, cause error) error {
	p.log.Warn().Err(cause).Str("event_id", evt.ID()).Str("event", string(evt.Name)).Msg("metaprotocol transaction errored")
	if err := p.tracker.ResolveErrored(ctx, evt, cause); err != nil {
		return err
	}
	if err := p.store.SetWatermark(ctx, storage.Watermark{
		BlockHeight:  evt.BlockHeight,
		IndexInBlock: evt.IndexInBlock,
	}); err != nil {
		return err
	}
	p.metrics.MetaprotocolErrored.Inc()
	return nil
}

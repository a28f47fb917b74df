// Package projection turns ordered chain events into the materialized
// content graph. Every handler runs inside the per-event transaction the
// pipeline opens; handlers read current state, apply exactly one coherent
// transition, and leave derived counters consistent.
package projection

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/louisbranch/mediagraph/internal/domain/event"
	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// Applier dispatches events to their handlers.
type Applier struct {
	log      zerolog.Logger
	handlers map[event.Name]handlerSpec
}

// NewApplier builds an applier with the full handler registry.
func NewApplier(log zerolog.Logger) *Applier {
	a := &Applier{log: log}
	a.handlers = a.registry()
	return a
}

// Known reports whether the event kind has a handler.
func (a *Applier) Known(name event.Name) bool {
	_, ok := a.handlers[name]
	return ok
}

// Metaprotocol reports whether the event kind is a metaprotocol remark and
// needs transaction status tracking.
func (a *Applier) Metaprotocol(name event.Name) bool {
	return a.handlers[name].metaprotocol
}

// Apply runs the handler for evt against st. Unknown event kinds are an
// error; the pipeline filters the stream before dispatch.
func (a *Applier) Apply(ctx context.Context, st storage.Store, evt event.Event) error {
	spec, ok := a.handlers[evt.Name]
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeEventMalformed, "no handler for event", map[string]string{
			"event": string(evt.Name),
		})
	}
	a.log.Debug().
		Str("event", string(evt.Name)).
		Uint64("block", evt.BlockHeight).
		Uint32("index", evt.IndexInBlock).
		Msg("applying event")
	return spec.apply(ctx, st, evt)
}

// decodeParams unmarshals the event params into the handler's struct.
func decodeParams[T any](evt event.Event) (T, error) {
	var params T
	if err := json.Unmarshal(evt.Params, &params); err != nil {
		return params, apperrors.Wrap(apperrors.CodeEventMalformed, "decode event params", err)
	}
	return params, nil
}

// inconsistent builds the fatal error for state the chain guarantees to
// exist but the store does not have.
func inconsistent(message string, meta map[string]string) error {
	return apperrors.WithMetadata(apperrors.CodeInconsistentState, message, meta)
}

// Package service implements the fintrack.v1 Connect services on top of the
// pure ledger, group and goal packages and a storage.DocumentStore.
package service

import (
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/metrics"
)

// Options carries the collaborators shared by every service. The zero value
// is usable: events and metrics are disabled, ids are UUIDs and the clock is
// the system clock.
type Options struct {
	Events  *events.Emitter
	Metrics *metrics.Metrics
	IDs     ids.Generator
	Clock   ids.Clock

	// StrictPercentages rejects percentage splits whose list does not cover
	// every member or does not sum to 100.
	StrictPercentages bool
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = ids.UUID{}
	}
	if o.Clock == nil {
		o.Clock = ids.SystemClock
	}
	return o
}

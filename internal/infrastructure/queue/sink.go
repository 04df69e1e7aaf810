package queue

import (
	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// LogSink writes every sync outcome to the diagnostic log. Failures are
// logged at warn level and never reach the user.
type LogSink struct {
	log zerolog.Logger
}

var _ ports.OutcomeSink = LogSink{}

func NewLogSink(log zerolog.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) Record(o domain.SyncOutcome) {
	if o.OK() {
		s.log.Debug().
			Str("command_id", o.Command.ID).
			Str("kind", string(o.Command.Kind)).
			Str("product_id", o.Command.ProductID).
			Int("worker_id", o.WorkerID).
			Dur("duration", o.Duration).
			Msg("cart sync applied")
		return
	}
	s.log.Warn().
		Err(o.Err).
		Str("command_id", o.Command.ID).
		Str("kind", string(o.Command.Kind)).
		Str("product_id", o.Command.ProductID).
		Int("quantity", o.Command.Quantity).
		Int("worker_id", o.WorkerID).
		Msg("cart sync failed")
}

// MultiSink fans an outcome out to several sinks.
type MultiSink []ports.OutcomeSink

func (m MultiSink) Record(o domain.SyncOutcome) {
	for _, s := range m {
		s.Record(o)
	}
}

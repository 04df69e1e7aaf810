package metrics

import (
	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// Observer counts sync outcomes and stock notices.
type Observer struct {
	log zerolog.Logger
}

var (
	_ ports.OutcomeSink   = (*Observer)(nil)
	_ ports.StockNotifier = (*Observer)(nil)
)

func NewObserver(log zerolog.Logger) *Observer {
	return &Observer{log: log}
}

func (o *Observer) Record(out domain.SyncOutcome) {
	result := "ok"
	if !out.OK() {
		result = "error"
	}
	kind := string(out.Command.Kind)
	CartSyncTotal.WithLabelValues(kind, result).Inc()
	CartSyncDuration.WithLabelValues(kind).Observe(out.Duration.Seconds())
}

func (o *Observer) NotifyStock(n domain.StockNotice) {
	StockNoticesTotal.Inc()
	o.log.Info().
		Str("product_id", n.ProductID).
		Int("requested", n.Requested).
		Int("available", n.Available).
		Msg("quantity clamped to stock")
}

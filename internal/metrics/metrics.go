// Package metrics exposes the server's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks the number of live registry bindings.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hoppon_ws_active_connections",
		Help: "Number of authenticated WebSocket connections currently bound.",
	})

	// MessagesPersisted counts messages durably stored.
	MessagesPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hoppon_messages_persisted_total",
		Help: "Total number of chat messages inserted into the store.",
	})

	// MessagesDelivered counts per-connection message deliveries.
	MessagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hoppon_messages_delivered_total",
		Help: "Total number of new_message events written to live connections.",
	})

	// WSEvents counts inbound WebSocket events by type.
	WSEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hoppon_ws_events_total",
		Help: "Total number of inbound WebSocket events handled.",
	}, []string{"type"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

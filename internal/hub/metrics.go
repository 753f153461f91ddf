package hub

import "github.com/prometheus/client_golang/prometheus"

var (
	connectionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ocrstream",
			Subsystem: "hub",
			Name:      "connections",
			Help:      "Registered websocket connections",
		},
	)

	inboundTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "hub",
			Name:      "inbound_messages_total",
			Help:      "Inbound websocket messages by parsed type",
		},
		[]string{"type"},
	)

	deliveryErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "hub",
			Name:      "delivery_errors_total",
			Help:      "Failed writes to websocket connections",
		},
	)

	evictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ocrstream",
			Subsystem: "hub",
			Name:      "evictions_total",
			Help:      "Connections closed for inactivity",
		},
	)
)

func init() {
	prometheus.MustRegister(connectionsGauge, inboundTotal, deliveryErrorsTotal, evictionsTotal)
}

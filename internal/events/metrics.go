package events

import "github.com/prometheus/client_golang/prometheus"

type busMetrics struct {
	published   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

func newBusMetrics(registry prometheus.Registerer) *busMetrics {
	m := &busMetrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plenario_events_published_total",
				Help: "Number of domain events published, by type",
			},
			[]string{"type"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plenario_events_dropped_total",
				Help: "Number of events dropped due to full subscriber queues, by type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "plenario_events_subscribers",
				Help: "Number of active event subscribers, by type",
			},
			[]string{"type"},
		),
	}
	registry.MustRegister(m.published, m.dropped, m.subscribers)
	return m
}

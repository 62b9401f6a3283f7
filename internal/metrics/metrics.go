package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "battleship"

type Metrics struct {
	RoomsCreated  *prometheus.CounterVec
	RoomsActive   prometheus.Gauge
	QueueLength   prometheus.Gauge
	Shots         *prometheus.CounterVec
	GamesFinished prometheus.Counter
	Rejections    *prometheus.CounterVec
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RoomsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Rooms created, by origin (code or matchmaking).",
		}, []string{"origin"}),
		RoomsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Rooms currently registered.",
		}),
		QueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "matchmaking_queue_length",
			Help:      "Players waiting for a random opponent.",
		}),
		Shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_total",
			Help:      "Resolved shots, by outcome.",
		}, []string{"outcome"}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that ended with a winner.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_actions_total",
			Help:      "Player actions rejected by the engine, by action.",
		}, []string{"action"}),
	}

	reg.MustRegister(m.RoomsCreated, m.RoomsActive, m.QueueLength, m.Shots, m.GamesFinished, m.Rejections)

	return m
}

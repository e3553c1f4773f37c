package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Reader metrics
	LinesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edjournal_lines_read_total",
			Help: "Total complete journal lines read by the tailer and backfill",
		},
	)
	EventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edjournal_events_dispatched_total",
			Help: "Total events delivered to the subscriber bus, by kind",
		},
		[]string{"kind"},
	)
	MalformedLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edjournal_malformed_lines_total",
			Help: "Total journal lines skipped because they were not valid JSON objects",
		},
	)
	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edjournal_decode_errors_total",
			Help: "Total records skipped because a required field was missing or mistyped",
		},
		[]string{"event"},
	)
	SubscriberErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edjournal_subscriber_errors_total",
			Help: "Total subscriber handler failures (errors and panics), by kind",
		},
		[]string{"kind"},
	)
	Rotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edjournal_rotations_total",
			Help: "Total tailing sessions restarted because a newer journal file appeared",
		},
	)
	ReaderState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "edjournal_reader_state",
			Help: "Current reader lifecycle state (0=idle, 1=active, 2=stopping, 3=stopped)",
		},
	)

	// Alert metrics
	AlertsMatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edjournal_alerts_matched_total",
			Help: "Total records matched by alert rules, by rule id",
		},
		[]string{"rule"},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReadingsIngested counts readings successfully written to the store.
	ReadingsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medipulse_readings_ingested_total",
		Help: "Number of ECG readings persisted.",
	})

	// AnomaliesDetected counts stored readings flagged by the classifier,
	// labelled by category.
	AnomaliesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medipulse_anomalies_detected_total",
		Help: "Number of ingested readings flagged as anomalous.",
	}, []string{"category"})

	// SubmissionsRejected counts submissions that failed device resolution
	// or the store write.
	SubmissionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medipulse_submissions_rejected_total",
		Help: "Number of reading submissions rejected before or during persistence.",
	})
)

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "created_total",
		Help:      "Workouts created from form submissions, by kind.",
	}, []string{"kind"})
	submissionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "rejected_submissions_total",
		Help:      "Form submissions rejected by input validation.",
	})
	persistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mapty",
		Subsystem: "persistence",
		Name:      "failures_total",
		Help:      "Failed writes or removals of the persisted workout snapshot.",
	})
	storedWorkouts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapty",
		Subsystem: "workouts",
		Name:      "stored",
		Help:      "Workouts currently held in the session store.",
	})
)

func init() {
	prometheus.MustRegister(workoutsCreated, submissionsRejected, persistFailures, storedWorkouts)
}

func RecordWorkoutCreated(kind string) {
	workoutsCreated.WithLabelValues(kind).Inc()
}

func RecordSubmissionRejected() {
	submissionsRejected.Inc()
}

func RecordPersistFailure() {
	persistFailures.Inc()
}

// SetStoredWorkouts updates the store size gauge.
func SetStoredWorkouts(n int) {
	storedWorkouts.Set(float64(n))
}

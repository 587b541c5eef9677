package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Directory-level Prometheus metrics. Defined in a standalone package to
// avoid import cycles between the facade and HTTP packages.

var (
	DirectoryOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_operations_total",
		Help: "Operaciones del directorio por op y resultado (ok|conflict|not_found|invalid|error)",
	}, []string{"op", "outcome"})

	StoreLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_store_latency_ms",
		Help:    "Latencia de operaciones contra el store en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"op"})

	CascadeSteps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_cascade_steps_total",
		Help: "Pasos del cascade de borrado de realm por paso y resultado",
	}, []string{"step", "outcome"})
)

// Register registers the directory metrics on the given registry (or
// default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{DirectoryOps, StoreLatency, CascadeSteps} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

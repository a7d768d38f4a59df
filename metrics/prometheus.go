package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// RequestDurationBuckets covers fast local handlers as well as handlers that
// wait on a slow ledger node.
var RequestDurationBuckets = []float64{
	0.001,
	0.005,
	0.01,
	0.025,
	0.05,
	0.1,
	0.25,
	0.5,
	1.0,
	2.5,
	5.0,
	10.0,
}

// Register regsiters the provided prometheus collector, or returns
// the previously registered metric if it exists.
func Register(m prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(m); err != nil {
		if e, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return e.ExistingCollector
		}

		logrus.WithError(err).Error("failed to register metric")
	}
	return m
}

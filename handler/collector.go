package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports a Dispatcher's Stats as Prometheus counters
type Collector struct {
	d       *Dispatcher
	written *prometheus.Desc
	failed  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for d. Metric names are prefixed with namespace.
func NewCollector(namespace string, d *Dispatcher) *Collector {
	return &Collector{
		d: d,
		written: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "lines_written_total"),
			"Lines written, by standard stream.",
			[]string{"channel"}, nil,
		),
		failed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "write_failures_total"),
			"Lines that failed to write, by standard stream.",
			[]string{"channel"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.written
	ch <- c.failed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, channel := range Channels() {
		ch <- prometheus.MustNewConstMetric(c.written, prometheus.CounterValue,
			float64(c.d.stats.GetWritten(channel)), channel.String())
		ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue,
			float64(c.d.stats.GetFailed(channel)), channel.String())
	}
}

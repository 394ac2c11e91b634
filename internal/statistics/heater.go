package statistics

import (
	"github.com/cryocore/thermd/internal/heaters"
	"github.com/prometheus/client_golang/prometheus"
)

const heaterSubsystem = "heater"

type HeaterCollector struct {
	registry *heaters.Registry

	power *prometheus.Desc
}

func NewHeaterCollector(registry *heaters.Registry) *HeaterCollector {
	return &HeaterCollector{
		registry: registry,
		power: prometheus.NewDesc(prometheus.BuildFQName(namespace, heaterSubsystem, "power_percent"),
			"Last commanded power of the heater in percent of its rated maximum",
			[]string{"id"}, nil,
		),
	}
}

func (collector *HeaterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.power
}

// Collect implements the required collect function for all prometheus collectors
func (collector *HeaterCollector) Collect(ch chan<- prometheus.Metric) {
	for _, heater := range collector.registry.Snapshot() {
		ch <- prometheus.MustNewConstMetric(collector.power, prometheus.GaugeValue, heater.Percent, heater.Id)
	}
}

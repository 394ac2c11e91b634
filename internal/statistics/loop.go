package statistics

import (
	"github.com/cryocore/thermd/internal/control"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

type LoopCollector struct {
	engine *control.Engine

	setpoint *prometheus.Desc
	measured *prometheus.Desc
	output   *prometheus.Desc
	status   *prometheus.Desc
}

func NewLoopCollector(engine *control.Engine) *LoopCollector {
	return &LoopCollector{
		engine: engine,
		setpoint: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "setpoint_kelvin"),
			"Resolved setpoint of the loop",
			[]string{"id"}, nil,
		),
		measured: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "measured_kelvin"),
			"Last measured aggregate temperature of the loop",
			[]string{"id"}, nil,
		),
		output: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "output_watts"),
			"Last PID output of the loop",
			[]string{"id"}, nil,
		),
		status: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "status"),
			"Current status code of the loop (0=ok 1=disabled 2=sensorError 3=alarm 4=notInitialized)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.setpoint
	ch <- collector.measured
	ch <- collector.output
	ch <- collector.status
}

// Collect implements the required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, loop := range collector.engine.Snapshot() {
		ch <- prometheus.MustNewConstMetric(collector.setpoint, prometheus.GaugeValue, loop.ResolvedSetpoint, loop.Id)
		ch <- prometheus.MustNewConstMetric(collector.measured, prometheus.GaugeValue, loop.Measured, loop.Id)
		ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, loop.Output, loop.Id)
		ch <- prometheus.MustNewConstMetric(collector.status, prometheus.GaugeValue, loop.Status.Code(), loop.Id)
	}
}

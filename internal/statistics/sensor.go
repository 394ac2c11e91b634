package statistics

import (
	"github.com/cryocore/thermd/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const sensorSubsystem = "sensor"

type SensorCollector struct {
	registry *sensors.Registry

	temperature *prometheus.Desc
	valid       *prometheus.Desc
}

func NewSensorCollector(registry *sensors.Registry) *SensorCollector {
	return &SensorCollector{
		registry: registry,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, sensorSubsystem, "temperature_kelvin"),
			"Last cached temperature of the sensor",
			[]string{"id"}, nil,
		),
		valid: prometheus.NewDesc(prometheus.BuildFQName(namespace, sensorSubsystem, "valid"),
			"Whether the cached reading of the sensor is currently valid",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.valid
}

// Collect implements the required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.registry.Snapshot() {
		valid := 0.0
		if sensor.Valid {
			valid = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, sensor.Reading.TemperatureKelvin, sensor.Id)
		ch <- prometheus.MustNewConstMetric(collector.valid, prometheus.GaugeValue, valid, sensor.Id)
	}
}

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swoga/rpi-stats/sensor"
)

// Readings are the outcomes of one probe of both sensors.
type Readings struct {
	Temperature    sensor.Temperature
	TemperatureErr error
	Fan            sensor.Fan
	FanErr         error
	FanMaxRPM      int
}

// Success reports whether every sensor could be read.
func (r Readings) Success() bool {
	return r.TemperatureErr == nil && r.FanErr == nil
}

// AddMetrics registers the gauges of one probe on registry.
func AddMetrics(registry prometheus.Registerer, readings Readings) error {
	upGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sensor_up",
		Help: "Whether the last read of the sensor succeeded.",
	}, []string{"sensor"})
	if err := registry.Register(upGaugeVec); err != nil {
		return err
	}

	if err := addMetricsTemperature(registry, readings.Temperature, readings.TemperatureErr); err != nil {
		return err
	}
	upGaugeVec.WithLabelValues("temperature").Set(boolToFloat(readings.TemperatureErr == nil))

	if err := addMetricsFan(prometheus.WrapRegistererWithPrefix("fan_", registry), readings.Fan, readings.FanMaxRPM, readings.FanErr); err != nil {
		return err
	}
	upGaugeVec.WithLabelValues("fan").Set(boolToFloat(readings.FanErr == nil))

	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

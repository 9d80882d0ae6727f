package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swoga/rpi-stats/sensor"
)

func addMetricsTemperature(registry prometheus.Registerer, temperature sensor.Temperature, err error) error {
	// output that could not be parsed is not exported
	if err != nil || temperature.Celsius == nil {
		return nil
	}

	temperatureGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cpu_temperature_celsius",
		Help: "CPU temperature reported by the diagnostic command.",
	})
	if err := registry.Register(temperatureGauge); err != nil {
		return err
	}
	temperatureGauge.Set(*temperature.Celsius)
	return nil
}

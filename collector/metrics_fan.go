package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swoga/rpi-stats/sensor"
)

func addMetricsFan(registry prometheus.Registerer, fan sensor.Fan, maxRPM int, err error) error {
	maxRPMGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "max_rpm",
		Help: "Configured fan speed used as 100 percent.",
	})
	if err := registry.Register(maxRPMGauge); err != nil {
		return err
	}
	maxRPMGauge.Set(float64(maxRPM))

	if err != nil {
		return nil
	}

	speedGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "speed_rpm",
		Help: "Fan speed read from the hwmon sensor file.",
	})
	if err := registry.Register(speedGauge); err != nil {
		return err
	}
	speedGauge.Set(float64(fan.RPM))

	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "info",
		Help: "Sensor file the fan speed was read from.",
	}, []string{"path"})
	if err := registry.Register(infoGaugeVec); err != nil {
		return err
	}
	infoGaugeVec.WithLabelValues(fan.Path).Set(1)

	if percent, ok := sensor.FanPercent(fan.RPM, maxRPM); ok {
		percentGauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "speed_percent",
			Help: "Fan speed as a percentage of max_rpm.",
		})
		if err := registry.Register(percentGauge); err != nil {
			return err
		}
		percentGauge.Set(percent)
	}

	return nil
}

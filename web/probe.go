package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swoga/rpi-stats/collector"
	"github.com/swoga/rpi-stats/config"
	"go.uber.org/zap"
)

// HandleProbe reads both sensors and exports them on a registry of its own.
func (s *Server) HandleProbe(w http.ResponseWriter, r *http.Request) {
	config := s.config()
	log := s.log.With(zap.String("remote", r.RemoteAddr))
	timeout := getTimeout(config, r)

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()
	r = r.WithContext(ctx)
	log.Debug("probe", zap.Duration("timeout", timeout))

	start := time.Now()
	registry := prometheus.NewRegistry()
	exporterRegistry := prometheus.WrapRegistererWithPrefix("rpi_stats_", registry)

	readings := s.read(ctx)
	if readings.TemperatureErr != nil {
		log.Warn("error reading temperature", zap.Any("err", readings.TemperatureErr))
	}
	if readings.FanErr != nil {
		log.Warn("error reading fan", zap.Any("err", readings.FanErr))
	}

	success := readings.Success()
	if err := collector.AddMetrics(exporterRegistry, readings); err != nil {
		log.Error("error adding metrics", zap.Any("err", err))
		success = false
	}

	probeDurationGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_duration_seconds",
		Help: "Returns how long the probe took to complete in seconds",
	})
	exporterRegistry.MustRegister(probeDurationGauge)
	probeDurationGauge.Set(time.Since(start).Seconds())

	probeSuccessGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_success",
		Help: "Displays whether or not the probe was a success",
	})
	exporterRegistry.MustRegister(probeSuccessGauge)
	var successValue float64
	if success {
		successValue = 1
	}
	probeSuccessGauge.Set(successValue)

	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	h.ServeHTTP(w, r)
}

func getTimeout(config *config.Config, r *http.Request) time.Duration {
	value := r.Header.Get("X-Prometheus-Scrape-Timeout-Seconds")
	if value != "" {
		timeout, err := strconv.ParseFloat(value, 64)
		if err == nil && timeout > 0 {
			return time.Duration(timeout * float64(time.Second))
		}
	}
	return config.ReadTimeout()
}

package web

import (
	"errors"
	"net/http"

	"github.com/swoga/rpi-stats/collector"
	"github.com/swoga/rpi-stats/model"
	"github.com/swoga/rpi-stats/sensor"
	"go.uber.org/zap"
)

func (s *Server) HandleTemp(w http.ResponseWriter, r *http.Request) {
	temperature, err := s.sensors.ReadCPUTemp(r.Context())
	if err != nil {
		s.log.Error("error reading temperature", zap.Any("err", err))
		s.writeJSON(w, http.StatusInternalServerError, newErrorResponse(err))
		return
	}

	s.writeJSON(w, http.StatusOK, model.TemperatureResponse{
		TempC: temperature.Celsius,
		Raw:   temperature.Raw,
	})
}

// HandleStats never fails the request, sensor errors are reported in the body.
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	readings := s.read(r.Context())
	if readings.TemperatureErr != nil {
		s.log.Debug("error reading temperature", zap.Any("err", readings.TemperatureErr))
	}
	if readings.FanErr != nil {
		s.log.Debug("error reading fan", zap.Any("err", readings.FanErr))
	}

	s.writeJSON(w, http.StatusOK, newStats(readings))
}

func newErrorResponse(err error) model.ErrorResponse {
	var serr *sensor.Error
	if errors.As(err, &serr) {
		return model.ErrorResponse{
			Error:   serr.Summary(),
			Details: serr.Details(),
		}
	}
	return model.ErrorResponse{
		Error:   sensor.ErrUnexpected.Error(),
		Details: err.Error(),
	}
}

func newStats(readings collector.Readings) model.Stats {
	var stats model.Stats

	if readings.TemperatureErr != nil {
		stats.TempError = stringPtr(readings.TemperatureErr.Error())
	} else {
		stats.TempC = readings.Temperature.Celsius
		stats.TempRaw = stringPtr(readings.Temperature.Raw)
	}

	if readings.FanErr != nil {
		stats.FanError = stringPtr(readings.FanErr.Error())
		var serr *sensor.Error
		if errors.As(readings.FanErr, &serr) && serr.Path != "" {
			stats.FanPath = stringPtr(serr.Path)
		}
	} else {
		rpm := readings.Fan.RPM
		stats.FanRPM = &rpm
		stats.FanPath = stringPtr(readings.Fan.Path)
		if percent, ok := sensor.FanPercent(rpm, readings.FanMaxRPM); ok {
			stats.FanPercent = &percent
		}
	}

	return stats
}

func stringPtr(s string) *string {
	return &s
}

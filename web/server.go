package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swoga/rpi-stats/collector"
	"github.com/swoga/rpi-stats/config"
	"github.com/swoga/rpi-stats/sensor"
	"go.uber.org/zap"
)

//go:embed assets
var embeddedAssets embed.FS

// Sensors is read once per request, nothing is cached between requests.
type Sensors interface {
	ReadCPUTemp(ctx context.Context) (sensor.Temperature, error)
	ReadFanRPM() (sensor.Fan, error)
	FanMaxRPM() int
}

type Server struct {
	log     *zap.Logger
	sensors Sensors
	config  func() *config.Config
	index   *template.Template
	static  fs.FS
}

func New(log *zap.Logger, sensors Sensors, cfg func() *config.Config) *Server {
	static, err := fs.Sub(embeddedAssets, "assets/static")
	if err != nil {
		panic(err)
	}
	return &Server{
		log:     log,
		sensors: sensors,
		config:  cfg,
		index:   template.Must(template.ParseFS(embeddedAssets, "assets/index.html")),
		static:  static,
	}
}

// Mux routes the JSON API, the dashboard, and the probe and metrics paths of
// the current config. The paths must have passed config.Validate.
func (s *Server) Mux() *http.ServeMux {
	c := s.config()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/temp", s.HandleTemp)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET "+c.ProbePath, s.HandleProbe)
	mux.Handle("GET "+c.MetricsPath, promhttp.Handler())
	mux.Handle("GET "+config.StaticPrefix, http.StripPrefix(config.StaticPrefix, http.FileServer(http.FS(s.static))))
	mux.HandleFunc("GET /{$}", s.HandleIndex)
	return mux
}

// read queries both sensors independently, a failure of one does not affect the other.
func (s *Server) read(ctx context.Context) collector.Readings {
	var readings collector.Readings
	readings.Temperature, readings.TemperatureErr = s.sensors.ReadCPUTemp(ctx)
	readings.Fan, readings.FanErr = s.sensors.ReadFanRPM()
	readings.FanMaxRPM = s.sensors.FanMaxRPM()
	return readings
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to write JSON", zap.Error(err))
	}
}

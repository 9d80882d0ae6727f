package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Listen      string      `yaml:"listen"`
	ProbePath   string      `yaml:"probe_path"`
	MetricsPath string      `yaml:"metrics_path"`
	Timeout     float64     `yaml:"timeout"`
	Temperature Temperature `yaml:"temperature"`
	Fan         Fan         `yaml:"fan"`
	Dashboard   Dashboard   `yaml:"dashboard"`
}

func DefaultConfig() Config {
	return Config{
		Listen:      ":8000",
		ProbePath:   "/probe",
		MetricsPath: "/metrics",
		Timeout:     5,
		Temperature: DefaultTemperature(),
		Fan:         DefaultFan(),
		Dashboard:   DefaultDashboard(),
	}
}

func DefaultTemperature() Temperature {
	return Temperature{
		Command: []string{"vcgencmd", "measure_temp"},
	}
}

func DefaultFan() Fan {
	return Fan{
		Glob:   "/sys/devices/platform/cooling_fan/hwmon/hwmon*/fan1_input",
		MaxRPM: 8000,
	}
}

func DefaultDashboard() Dashboard {
	return Dashboard{
		Title:        "Raspberry Pi",
		PollInterval: 2,
	}
}

func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultConfig()

	type plain Config
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	return nil
}

// Validate reports the first setting that cannot be served.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen must not be empty")
	}
	if !strings.HasPrefix(c.ProbePath, "/") || !strings.HasPrefix(c.MetricsPath, "/") {
		return errors.New("probe_path and metrics_path must start with /")
	}
	if c.ProbePath == c.MetricsPath {
		return errors.New("probe_path and metrics_path must differ")
	}
	for _, p := range []struct{ name, path string }{{"probe_path", c.ProbePath}, {"metrics_path", c.MetricsPath}} {
		if err := checkRoutePath(p.path); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if len(c.Temperature.Command) == 0 || c.Temperature.Command[0] == "" {
		return errors.New("temperature.command must not be empty")
	}
	if c.Fan.Glob == "" {
		return errors.New("fan.glob must not be empty")
	}
	if c.Fan.MaxRPM < 0 {
		return errors.New("fan.max_rpm must be >= 0")
	}
	if c.Dashboard.PollInterval <= 0 {
		return errors.New("dashboard.poll_interval must be > 0")
	}
	return nil
}

// ReservedPaths are served independent of the config.
var ReservedPaths = []string{"/", "/api/temp", "/api/stats", "/-/reload", StaticPrefix}

// StaticPrefix is the subtree of the embedded dashboard assets.
const StaticPrefix = "/static/"

func checkRoutePath(path string) error {
	for _, reserved := range ReservedPaths {
		if path == reserved {
			return fmt.Errorf("%s is reserved", path)
		}
	}
	if strings.HasPrefix(path, StaticPrefix) {
		return fmt.Errorf("%s is below %s", path, StaticPrefix)
	}
	if strings.ContainsAny(path, "{} \t") {
		return fmt.Errorf("%s must not contain wildcards or spaces", path)
	}
	return nil
}

// ReadTimeout bounds a single sensor read.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Timeout * float64(time.Second))
}

type Temperature struct {
	// Command is the diagnostic command line, printing e.g. temp=48.3'C
	Command []string `yaml:"command"`
}

func (t *Temperature) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*t = DefaultTemperature()

	type plain Temperature
	if err := unmarshal((*plain)(t)); err != nil {
		return err
	}

	return nil
}

type Fan struct {
	// Glob matches the fan rpm file; the hwmon index may change between boots.
	Glob string `yaml:"glob"`
	// MaxRPM normalizes fan_percent, 0 disables it.
	MaxRPM int `yaml:"max_rpm"`
}

func (f *Fan) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*f = DefaultFan()

	type plain Fan
	if err := unmarshal((*plain)(f)); err != nil {
		return err
	}

	return nil
}

type Dashboard struct {
	Title        string  `yaml:"title"`
	PollInterval float64 `yaml:"poll_interval"`
}

func (d *Dashboard) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*d = DefaultDashboard()

	type plain Dashboard
	if err := unmarshal((*plain)(d)); err != nil {
		return err
	}

	return nil
}

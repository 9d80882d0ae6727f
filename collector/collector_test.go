package collector

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/swoga/rpi-stats/sensor"
)

func celsius(v float64) *float64 {
	return &v
}

func TestAddMetrics_AllSensorsUp(t *testing.T) {
	registry := prometheus.NewRegistry()
	err := AddMetrics(registry, Readings{
		Temperature: sensor.Temperature{Celsius: celsius(48.3), Raw: "temp=48.3'C"},
		Fan:         sensor.Fan{RPM: 4000, Path: "/sys/hwmon2/fan1_input"},
		FanMaxRPM:   8000,
	})
	if err != nil {
		t.Fatalf("AddMetrics: %v", err)
	}

	expected := `
# HELP cpu_temperature_celsius CPU temperature reported by the diagnostic command.
# TYPE cpu_temperature_celsius gauge
cpu_temperature_celsius 48.3
# HELP fan_info Sensor file the fan speed was read from.
# TYPE fan_info gauge
fan_info{path="/sys/hwmon2/fan1_input"} 1
# HELP fan_max_rpm Configured fan speed used as 100 percent.
# TYPE fan_max_rpm gauge
fan_max_rpm 8000
# HELP fan_speed_percent Fan speed as a percentage of max_rpm.
# TYPE fan_speed_percent gauge
fan_speed_percent 50
# HELP fan_speed_rpm Fan speed read from the hwmon sensor file.
# TYPE fan_speed_rpm gauge
fan_speed_rpm 4000
# HELP sensor_up Whether the last read of the sensor succeeded.
# TYPE sensor_up gauge
sensor_up{sensor="fan"} 1
sensor_up{sensor="temperature"} 1
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected)); err != nil {
		t.Fatalf("metrics mismatch: %v", err)
	}
}

func TestAddMetrics_FailedSensors(t *testing.T) {
	registry := prometheus.NewRegistry()
	err := AddMetrics(registry, Readings{
		TemperatureErr: &sensor.Error{Kind: sensor.ErrExecutableNotFound, Source: "vcgencmd", Message: "vcgencmd not found"},
		FanErr:         &sensor.Error{Kind: sensor.ErrSensorFileNotFound, Message: "Fan rpm file not found"},
		FanMaxRPM:      8000,
	})
	if err != nil {
		t.Fatalf("AddMetrics: %v", err)
	}

	expected := `
# HELP sensor_up Whether the last read of the sensor succeeded.
# TYPE sensor_up gauge
sensor_up{sensor="fan"} 0
sensor_up{sensor="temperature"} 0
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "sensor_up"); err != nil {
		t.Fatalf("metrics mismatch: %v", err)
	}
	if n, err := testutil.GatherAndCount(registry, "cpu_temperature_celsius", "fan_speed_rpm", "fan_speed_percent"); err != nil || n != 0 {
		t.Fatalf("count=%d err=%v want no readings exported", n, err)
	}
}

func TestAddMetrics_UnparsedTemperatureAndNoMaxRPM(t *testing.T) {
	registry := prometheus.NewRegistry()
	err := AddMetrics(registry, Readings{
		Temperature: sensor.Temperature{Raw: "temp=abc'C"},
		Fan:         sensor.Fan{RPM: 1200, Path: "/sys/hwmon0/fan1_input"},
	})
	if err != nil {
		t.Fatalf("AddMetrics: %v", err)
	}

	if n, err := testutil.GatherAndCount(registry, "cpu_temperature_celsius", "fan_speed_percent"); err != nil || n != 0 {
		t.Fatalf("count=%d err=%v want no temperature or percent", n, err)
	}
	if n, err := testutil.GatherAndCount(registry, "fan_speed_rpm"); err != nil || n != 1 {
		t.Fatalf("count=%d err=%v want fan_speed_rpm", n, err)
	}
}

func TestReadingsSuccess(t *testing.T) {
	if !(Readings{}).Success() {
		t.Fatalf("expected success without errors")
	}
	if (Readings{FanErr: sensor.ErrSensorRead}).Success() {
		t.Fatalf("expected failure with fan error")
	}
}

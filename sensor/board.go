package sensor

import (
	"context"

	"github.com/swoga/rpi-stats/config"
)

// Board reads the sensors of the host as described by the current config.
// The config is looked up on every read, so a reload applies to the next request.
type Board struct {
	config func() *config.Config
}

// NewBoard returns a Board reading its settings from cfg.
func NewBoard(cfg func() *config.Config) *Board {
	return &Board{config: cfg}
}

// ReadCPUTemp runs the temperature command bounded by the configured timeout.
func (b *Board) ReadCPUTemp(ctx context.Context) (Temperature, error) {
	c := b.config()
	ctx, cancel := context.WithTimeout(ctx, c.ReadTimeout())
	defer cancel()
	return ReadCPUTemp(ctx, c.Temperature.Command)
}

// ReadFanRPM reads the fan file matching the configured glob.
func (b *Board) ReadFanRPM() (Fan, error) {
	return ReadFanRPM(b.config().Fan.Glob)
}

// FanMaxRPM is the configured speed used as 100 percent.
func (b *Board) FanMaxRPM() int {
	return b.config().Fan.MaxRPM
}

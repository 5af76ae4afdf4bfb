package command

import (
	"fmt"
	"time"

	"github.com/duskmoor/realmd/internal/atmos"
	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string         `json:"tick_interval"`
	Storage      StorageConfig  `json:"storage"`
	Nats         NatsConfig     `json:"nats"`
	State        StateConfig    `json:"state"`
	Ambiance     AmbianceConfig `json:"ambiance"`
	Dialogue     DialogueConfig `json:"dialogue"`
	Decay        DecayConfig    `json:"decay"`

	// Exposure overrides the default weather exposure rates when set.
	Exposure *atmos.ExposureRates `json:"exposure,omitempty"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.State.Validate())
	el.Add(c.Ambiance.Validate())
	el.Add(c.Dialogue.Validate())
	el.Add(c.Decay.Validate())

	if c.Exposure != nil {
		for name, v := range map[string]int{
			"wet_gain":     c.Exposure.WetGain,
			"cold_gain":    c.Exposure.ColdGain,
			"heat_gain":    c.Exposure.HeatGain,
			"indoor_decay": c.Exposure.IndoorDecay,
		} {
			if v < 0 {
				el.Add(fmt.Errorf("exposure %s must not be negative", name))
			}
		}
	}

	return el.Err()
}

type DecayConfig struct {
	// TicksPerStage is how many driver ticks a corpse spends in each decay
	// stage before moving to the next.
	TicksPerStage int `json:"ticks_per_stage"`
}

func (c *DecayConfig) Validate() error {
	el := errors.NewErrorList()

	if c.TicksPerStage < 0 {
		el.Add(fmt.Errorf("ticks_per_stage must not be negative"))
	}

	return el.Err()
}

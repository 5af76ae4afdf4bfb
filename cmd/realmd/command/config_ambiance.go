package command

import (
	"fmt"
	"time"

	"github.com/duskmoor/realmd/internal/ambiance"
	"github.com/pixil98/go-errors"
)

type AmbianceConfig struct {
	NpcMin     string `json:"npc_min"`
	NpcMax     string `json:"npc_max"`
	AmbientMin string `json:"ambient_min"`
	AmbientMax string `json:"ambient_max"`
}

func (c *AmbianceConfig) Validate() error {
	el := errors.NewErrorList()

	for name, v := range map[string]string{
		"npc_min":     c.NpcMin,
		"npc_max":     c.NpcMax,
		"ambient_min": c.AmbientMin,
		"ambient_max": c.AmbientMax,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		}
	}

	return el.Err()
}

func (c *AmbianceConfig) BuildConfig() (ambiance.Config, error) {
	cfg := ambiance.DefaultConfig()

	for _, b := range []struct {
		raw  string
		dest *time.Duration
	}{
		{c.NpcMin, &cfg.Npc.Min},
		{c.NpcMax, &cfg.Npc.Max},
		{c.AmbientMin, &cfg.Ambient.Min},
		{c.AmbientMax, &cfg.Ambient.Max},
	} {
		if b.raw == "" {
			continue
		}
		d, err := time.ParseDuration(b.raw)
		if err != nil {
			return ambiance.Config{}, fmt.Errorf("parsing ambiance band: %w", err)
		}
		*b.dest = d
	}

	if cfg.Npc.Max < cfg.Npc.Min || cfg.Ambient.Max < cfg.Ambient.Min {
		return ambiance.Config{}, fmt.Errorf("ambiance band max must not be below min")
	}
	return cfg, nil
}

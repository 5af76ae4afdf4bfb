package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 5
)

type Manager interface {
	Tick(context.Context) error
}

type MudDriverOpt func(*MudDriver)

func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.tickLength = tickLength
	}
}

// MudDriver runs every registered manager once per tick. A manager that
// fails or panics is logged and skipped for that tick; one broken
// subsystem must not stall the rest of the world.
type MudDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewMudDriver(managers []Manager, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *MudDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Tick(ctx)
		}
	}
}

func (d *MudDriver) Tick(ctx context.Context) {
	for _, m := range d.managers {
		if err := d.tickOne(ctx, m); err != nil {
			slog.Error("manager tick failed", "manager", fmt.Sprintf("%T", m), "err", err)
		}
	}
}

func (d *MudDriver) tickOne(ctx context.Context, m Manager) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return m.Tick(ctx)
}

package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks int
	err   error
	panic bool
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks++
	if m.panic {
		panic("boom")
	}
	return m.err
}

func TestMudDriver_TickRunsAllManagers(t *testing.T) {
	a := &countingManager{}
	b := &countingManager{}
	d := NewMudDriver([]Manager{a, b})

	d.Tick(context.Background())
	testutil.AssertEqual(t, "ticks", a.ticks, 1)
	testutil.AssertEqual(t, "ticks", b.ticks, 1)
}

func TestMudDriver_FailureIsolation(t *testing.T) {
	failing := &countingManager{err: errors.New("broken")}
	panicking := &countingManager{panic: true}
	healthy := &countingManager{}
	d := NewMudDriver([]Manager{failing, panicking, healthy})

	// Neither the error nor the panic stops the healthy manager.
	d.Tick(context.Background())
	d.Tick(context.Background())
	testutil.AssertEqual(t, "ticks", healthy.ticks, 2)
	testutil.AssertEqual(t, "ticks", failing.ticks, 2)
	testutil.AssertEqual(t, "ticks", panicking.ticks, 2)
}

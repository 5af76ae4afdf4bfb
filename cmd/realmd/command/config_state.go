package command

import (
	"fmt"
	"time"

	"github.com/duskmoor/realmd/internal/state"
	"github.com/pixil98/go-errors"
)

type StateConfig struct {
	// Path is the sqlite database file. ":memory:" is accepted for
	// throwaway worlds.
	Path      string `json:"path"`
	CacheTTL  string `json:"cache_ttl"`
	StartRoom string `json:"start_room"`
}

func (c *StateConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	}
	if c.StartRoom == "" {
		el.Add(fmt.Errorf("start_room is required"))
	}
	if c.CacheTTL != "" {
		if _, err := time.ParseDuration(c.CacheTTL); err != nil {
			el.Add(fmt.Errorf("parsing cache_ttl: %w", err))
		}
	}

	return el.Err()
}

func (c *StateConfig) BuildStore() (*state.Store, error) {
	return state.OpenStore(c.Path)
}

func (c *StateConfig) BuildManager(store *state.Store) (*state.Manager, error) {
	ttl := 15 * time.Minute
	if c.CacheTTL != "" {
		d, err := time.ParseDuration(c.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("parsing cache_ttl: %w", err)
		}
		ttl = d
	}
	return state.NewManager(store, ttl, c.StartRoom), nil
}

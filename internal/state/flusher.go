package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duskmoor/realmd/internal/atmos"
)

const worldDocKey = "atmosphere"

// WorldFlusher persists the shared world document each tick so the clock
// epoch and weather survive a restart.
type WorldFlusher struct {
	store *Store
	sky   interface{ Doc() atmos.Doc }
}

func NewWorldFlusher(store *Store, sky interface{ Doc() atmos.Doc }) *WorldFlusher {
	return &WorldFlusher{store: store, sky: sky}
}

// Tick satisfies driver.Manager.
func (f *WorldFlusher) Tick(ctx context.Context) error {
	doc := f.sky.Doc()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding world document: %w", err)
	}
	return f.store.SaveWorld(ctx, worldDocKey, string(data))
}

// LoadWorldDoc restores the persisted world document, or returns a fresh
// one with the epoch set to now when none has been saved yet.
func LoadWorldDoc(ctx context.Context, store *Store) (atmos.Doc, error) {
	raw, err := store.LoadWorld(ctx, worldDocKey)
	if err != nil {
		return atmos.Doc{}, fmt.Errorf("loading world document: %w", err)
	}
	if raw == "" {
		return atmos.Doc{Epoch: time.Now()}, nil
	}
	var doc atmos.Doc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return atmos.Doc{}, fmt.Errorf("decoding world document: %w", err)
	}
	return doc, nil
}

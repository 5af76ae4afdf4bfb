package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockStoreSpec implements ValidatingSpec for testing FileStore
type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func writeAsset(t *testing.T, dir, id string, spec *mockStoreSpec) {
	t.Helper()
	asset := Asset[*mockStoreSpec]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       spec,
	}
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("marshalling test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "path", store.path, tmpDir)
	testutil.AssertEqual(t, "records length", len(store.records), 0)
}

func TestNewFileStore_WithExistingAssets(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "room-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, tmpDir, "room-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", len(store.records), 2)

	first := store.Get("room-1")
	if first == nil {
		t.Fatal("expected room-1 to be loaded")
	}
	testutil.AssertEqual(t, "room-1 name", first.Name, "First")
}

func TestNewFileStore_Errors(t *testing.T) {
	tests := map[string]struct {
		setup func(t *testing.T, dir string)
	}{
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{invalid`), 0644); err != nil {
					t.Fatal(err)
				}
			},
		},
		"spec validation failure": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "noname", &mockStoreSpec{Value: 3})
			},
		},
		"duplicate key across directories": {
			setup: func(t *testing.T, dir string) {
				sub := filepath.Join(dir, "sub")
				if err := os.Mkdir(sub, 0755); err != nil {
					t.Fatal(err)
				}
				writeAsset(t, dir, "dup", &mockStoreSpec{Name: "A", Value: 1})
				writeAsset(t, sub, "dup", &mockStoreSpec{Name: "B", Value: 2})
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setup(t, tmpDir)

			if _, err := NewFileStore[*mockStoreSpec](tmpDir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFileStore_Get_UnknownIdReturnsNil(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
}

func TestFileStore_GetAllReturnsCopy(t *testing.T) {
	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "a", &mockStoreSpec{Name: "A", Value: 1})
	writeAsset(t, tmpDir, "b", &mockStoreSpec{Name: "B", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "count", len(all), 2)

	delete(all, "a")
	if store.Get("a") == nil {
		t.Error("GetAll should return a copy, not the internal map")
	}
}

func TestFileStore_SaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	if err := store.Save("town_square", &mockStoreSpec{Name: "Square", Value: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// In-memory record updated
	cached := store.Get("town_square")
	if cached == nil {
		t.Fatal("expected cached record")
	}
	testutil.AssertEqual(t, "cached name", cached.Name, "Square")

	// File written and loadable by a fresh store
	reloaded, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error reloading store: %v", err)
	}
	got := reloaded.Get("town_square")
	if got == nil {
		t.Fatal("expected record after reload")
	}
	testutil.AssertEqual(t, "reloaded name", got.Name, "Square")
	testutil.AssertEqual(t, "reloaded value", got.Value, 7)
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset  Asset[*mockStoreSpec]
		expErr bool
	}{
		"valid": {
			asset: Asset[*mockStoreSpec]{Version: 1, Identifier: "town_square", Spec: &mockStoreSpec{Name: "x"}},
		},
		"missing version": {
			asset:  Asset[*mockStoreSpec]{Identifier: "a", Spec: &mockStoreSpec{Name: "x"}},
			expErr: true,
		},
		"missing id": {
			asset:  Asset[*mockStoreSpec]{Version: 1, Spec: &mockStoreSpec{Name: "x"}},
			expErr: true,
		},
		"bad characters in id": {
			asset:  Asset[*mockStoreSpec]{Version: 1, Identifier: "no spaces!", Spec: &mockStoreSpec{Name: "x"}},
			expErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.expErr && err == nil {
				t.Error("expected error")
			}
			if !tt.expErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

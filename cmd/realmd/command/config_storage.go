package command

import (
	"fmt"
	"os"

	"github.com/duskmoor/realmd/internal/game"
	"github.com/duskmoor/realmd/internal/quest"
	"github.com/duskmoor/realmd/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Rooms  AssetConfig[*game.RoomSpec]   `json:"rooms"`
	Npcs   AssetConfig[*game.NpcSpec]    `json:"npcs"`
	Items  AssetConfig[*game.ItemSpec]   `json:"items"`
	Quests AssetConfig[*quest.QuestSpec] `json:"quests"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Npcs.Validate("npcs"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Quests.Validate("quests"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/duskmoor/realmd/internal/dialogue"
	"github.com/pixil98/go-errors"
)

type DialogueConfig struct {
	// ApiKeyFile points at a file holding the generation API key. Leaving
	// it unset runs NPCs on canned dialogue only.
	ApiKeyFile string `json:"api_key_file"`
	Model      string `json:"model"`
}

func (c *DialogueConfig) Validate() error {
	el := errors.NewErrorList()

	if c.ApiKeyFile != "" {
		if _, err := os.Stat(c.ApiKeyFile); err != nil {
			el.Add(fmt.Errorf("invalid api_key_file %q: %w", c.ApiKeyFile, err))
		}
	}

	return el.Err()
}

func (c *DialogueConfig) BuildService(ctx context.Context) (*dialogue.Service, error) {
	var key string
	if c.ApiKeyFile != "" {
		data, err := os.ReadFile(c.ApiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading api_key_file: %w", err)
		}
		key = strings.TrimSpace(string(data))
	}
	return dialogue.NewService(ctx, key, c.Model)
}

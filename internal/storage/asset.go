package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidatingSpec is implemented by every asset type loaded from disk.
type ValidatingSpec interface {
	Validate() error
}

// Identifier names a world definition (room, creature, item, quest).
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset is the on-disk envelope around a definition spec.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return string(a.Identifier)
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !identifierPattern.MatchString(a.Identifier.String()) {
		el.Add(fmt.Errorf("id %q may only contain letters, digits, '-' and '_'", a.Identifier))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

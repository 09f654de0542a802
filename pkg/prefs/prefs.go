// Package prefs persists user preferences for recipecost.
//
// The only preference is the colour [Theme]. It is stored through a [Store]
// with one implementation per backend:
//   - [MemoryStore]: in-process, for tests and the API server
//   - [FileStore]: a TOML file under ~/.config/recipecost, for the CLI
//   - [RedisStore]: a single Redis key, for shared deployments
//   - [MongoStore]: a single document in a MongoDB collection
//
// A store that has never been written reports [DefaultTheme].
//
// # Usage
//
//	store, err := prefs.NewFileStore("")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	theme, err := store.Theme(ctx)
//	if err != nil {
//	    return err
//	}
//	err = store.SetTheme(ctx, theme.Toggle())
package prefs

import (
	"context"
	"strings"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// Theme is the colour scheme of the interface.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// DefaultTheme is reported when no preference has been stored.
const DefaultTheme = Light

// ParseTheme parses a theme name, ignoring case and surrounding space.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (must be light or dark)", s)
}

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Toggle returns the other theme. Invalid themes toggle to Dark, as if they were Light.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Store is the interface for preference storage backends.
type Store interface {
	// Theme returns the stored theme, or DefaultTheme if none is stored.
	Theme(ctx context.Context) (Theme, error)

	// SetTheme stores t. Invalid themes are rejected with INVALID_THEME.
	SetTheme(ctx context.Context, t Theme) error

	// Close releases backend resources.
	Close() error
}

// Toggle flips the stored theme and returns the new value.
func Toggle(ctx context.Context, s Store) (Theme, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func validate(t Theme) error {
	if !t.Valid() {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (must be light or dark)", string(t))
	}
	return nil
}

// orDefault maps stored garbage and missing values to DefaultTheme.
func orDefault(s string) Theme {
	if t, err := ParseTheme(s); err == nil {
		return t
	}
	return DefaultTheme
}

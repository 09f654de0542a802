package prefs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the preferences file inside the config directory.
const FileName = "preferences.toml"

// fileDoc is the on-disk layout of the preferences file.
type fileDoc struct {
	Theme string `toml:"theme"`
}

// FileStore is a file-based preference store for the CLI.
// Preferences are stored as TOML in a config directory.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/recipecost/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "recipecost")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &FileStore{path: filepath.Join(baseDir, FileName)}, nil
}

func (s *FileStore) Theme(ctx context.Context) (Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc fileDoc
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		if os.IsNotExist(err) {
			return DefaultTheme, nil
		}
		return "", fmt.Errorf("read preferences: %w", err)
	}
	return orDefault(doc.Theme), nil
}

func (s *FileStore) SetTheme(ctx context.Context, t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(fileDoc{Theme: string(t)}); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the preferences file path.
func (s *FileStore) Path() string {
	return s.path
}

var _ Store = (*FileStore)(nil)

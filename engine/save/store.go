package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/pupplay/engine/gameerr"
)

// Store persists snapshots keyed by player name.
type Store interface {
	// Save writes the snapshot and returns where it went.
	Save(ctx context.Context, s *Snapshot) (string, error)
	// Load returns the snapshot for name. A missing save is reported as
	// gameerr.ErrSaveNotFound.
	Load(ctx context.Context, name string) (*Snapshot, error)
	// List returns the sanitized names of all saves.
	List(ctx context.Context) ([]string, error)
}

// SanitizeName maps a player name to a storage key: every character
// outside [A-Za-z0-9] becomes '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

func notFound(name string) error {
	return gameerr.New(gameerr.ErrSaveNotFound, "No save file found for %s", name)
}

// FileStore keeps one pretty-printed JSON file per player in Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.Dir, SanitizeName(name)+".json")
}

// Save writes the snapshot as pretty JSON and returns its path.
func (f *FileStore) Save(ctx context.Context, s *Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := Encode(s)
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	p := f.path(s.Name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	return p, nil
}

// Load reads the snapshot saved for name.
func (f *FileStore) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	return Decode(data)
}

// List returns the saved names, sorted.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list saves: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

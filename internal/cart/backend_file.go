package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend keeps one JSON file per namespace under dir. The file
// holds the ordered entry sequence in the exact wire shape
// [{id,name,price,imageUrl,quantity}] so a cart round-trips unchanged
// across restarts.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cart dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(ns string) string {
	// Namespaces are session ids, but never trust them as path parts.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, ns)
	return filepath.Join(b.dir, safe+".json")
}

func (b *FileBackend) Load(ctx context.Context, ns string) ([]Entry, error) {
	raw, err := os.ReadFile(b.path(ns))
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", ns, err)
	}
	return entries, nil
}

func (b *FileBackend) Save(ctx context.Context, ns string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	tmp := b.path(ns) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path(ns))
}

func (b *FileBackend) Delete(ctx context.Context, ns string) error {
	err := os.Remove(b.path(ns))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (b *FileBackend) Ping(ctx context.Context) error {
	_, err := os.Stat(b.dir)
	return err
}

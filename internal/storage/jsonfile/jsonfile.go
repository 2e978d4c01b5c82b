// Package jsonfile stores each slot as <dir>/<slot>.json.
//
// Writes go to a temp file in the same directory which is then renamed
// over the target, so a crash mid-write leaves the previous contents.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"ledger/internal/storage"
)

var slotName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) (string, error) {
	if !slotName.MatchString(slot) {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(s.dir, slot+".json"), nil
}

func (s *Store) Load(_ context.Context, slot string) ([]byte, error) {
	p, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (s *Store) Save(_ context.Context, slot string, data []byte) error {
	p, err := s.path(slot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("replace slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docassist/internal/domain"
)

// Store keeps one pretty-printed JSON array of {role, content} records per
// session in a single flat directory. There is no locking: the directory is
// expected to belong to one process at a time.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes through a temp file and a rename, so an interrupted save
// leaves either the old session or the new one.
func (s *Store) Save(name string, conv *domain.Conversation) (string, error) {
	name, err := domain.NormalizeSessionName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(conv, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing session: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("replacing %s: %w", path, err)
	}
	return path, nil
}

// List returns session file names in directory order. A missing directory
// simply means nothing has been saved yet.
func (s *Store) List() ([]string, error) {
	f, err := os.Open(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sessions directory: %w", err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("reading sessions directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.SessionExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *Store) Load(name string) (*domain.Conversation, error) {
	name, err := domain.NormalizeSessionName(name)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &conv, nil
}

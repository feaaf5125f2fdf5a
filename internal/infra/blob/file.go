package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xavierca1/leadtrack/internal/entity"
)

// FileStore keeps the lead collection in a single JSON document on
// disk. Saves go through a temp file plus rename so a crash mid-write
// never leaves a truncated blob behind.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load(_ context.Context) ([]entity.Lead, bool, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	var leads []entity.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return leads, true, nil
}

func (s *FileStore) Save(_ context.Context, leads []entity.Lead) error {
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".leads-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

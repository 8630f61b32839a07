package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StorageKey prefixes every saved cart file.
const StorageKey = "orderdesk-cart"

// Persister saves and restores a cart's line items across sessions.
type Persister interface {
	Save(items []LineItem) error
	Load() ([]LineItem, error)
}

// FilePersister keeps the cart as a JSON file on local disk, one file
// per session key.
type FilePersister struct {
	path string
}

func NewFilePersister(dir, sessionKey string) *FilePersister {
	return &FilePersister{
		path: filepath.Join(dir, fmt.Sprintf("%s-%s.json", StorageKey, sessionKey)),
	}
}

func (p *FilePersister) Save(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never leaves a truncated
	// cart behind.
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p *FilePersister) Load() ([]LineItem, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return items, nil
}

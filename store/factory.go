package store

import (
	"context"
	"fmt"
	"strings"

	"stockdesk/config"
	"stockdesk/domain"
)

// Store backends accepted by NewStore.
const (
	KindMemory = "memory"
	KindFile   = "file"
)

// NewStore constructs a domain.ProductStore by kind: "memory" or "file".
// For file store, provide the file path in path; for memory, path is ignored.
func NewStore(kind, path string) (domain.ProductStore, error) {
	switch strings.ToLower(kind) {
	case KindMemory, "mem":
		return NewInMemoryStore(), nil
	case KindFile:
		if path == "" {
			return nil, fmt.Errorf("file path required for file store")
		}
		return NewFileStore(path)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}

// Open builds the store described by cfg and, when cfg.Seed is set, loads
// the sample catalog into it if it is empty.
func Open(ctx context.Context, cfg config.Config) (domain.ProductStore, error) {
	s, err := NewStore(cfg.Store, cfg.StoreFile)
	if err != nil {
		return nil, err
	}
	if cfg.Seed {
		if _, err := Seed(ctx, s); err != nil {
			return nil, fmt.Errorf("seed %s store: %w", cfg.Store, err)
		}
	}
	return s, nil
}

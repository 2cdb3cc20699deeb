package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tally/internal/config"
	"tally/internal/registry"
)

const snapshotFileName = "registry.json"

func snapshotPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, snapshotFileName)
}

// loadRegistry restores the persisted registry. A missing snapshot yields an
// empty registry so first runs need no setup step.
func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	path := snapshotPath(cfg)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return registry.New(), nil
		}
		return nil, fmt.Errorf("open registry snapshot: %w", err)
	}
	defer file.Close()

	reg, err := registry.DecodeSnapshot(file)
	if err != nil {
		return nil, fmt.Errorf("decode registry snapshot %s: %w", path, err)
	}
	return reg, nil
}

// saveRegistry writes the snapshot atomically via a temp file rename.
func saveRegistry(cfg *config.Config, reg *registry.Registry) error {
	path := snapshotPath(cfg)
	tmp, err := os.CreateTemp(cfg.Paths.DataDir, snapshotFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := reg.EncodeSnapshot(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode registry snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace registry snapshot: %w", err)
	}
	return nil
}

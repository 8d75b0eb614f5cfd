package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"Pergola/internal/calc/cost"

	"gopkg.in/yaml.v3"
)

// FilePriceStore reads and writes a YAML price table on disk.
type FilePriceStore struct {
	Path string
	mu   sync.Mutex
}

func NewFilePriceStore(path string) *FilePriceStore {
	return &FilePriceStore{Path: path}
}

func (s *FilePriceStore) Load(ctx context.Context) (cost.PriceTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return cost.PriceTable{}, ErrNoPrices
	}
	if err != nil {
		return cost.PriceTable{}, err
	}
	return DecodeYAML(data)
}

// Save writes through a temp file so readers never see a partial table.
func (s *FilePriceStore) Save(ctx context.Context, t cost.PriceTable) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".prices-*.yaml")
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

// DecodeYAML parses a price table document.
func DecodeYAML(data []byte) (cost.PriceTable, error) {
	var t cost.PriceTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return cost.PriceTable{}, fmt.Errorf("decode price table: %w", err)
	}
	return t, nil
}

// MemoryPriceStore holds the table in process memory.
type MemoryPriceStore struct {
	mu    sync.RWMutex
	table *cost.PriceTable
}

func NewMemoryPriceStore() *MemoryPriceStore {
	return &MemoryPriceStore{}
}

func (s *MemoryPriceStore) Load(ctx context.Context) (cost.PriceTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return cost.PriceTable{}, ErrNoPrices
	}
	return *s.table, nil
}

func (s *MemoryPriceStore) Save(ctx context.Context, t cost.PriceTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = &t
	return nil
}

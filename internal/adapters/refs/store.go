package refs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/Anchor-Protocol/terrariums/internal/config"
	"github.com/Anchor-Protocol/terrariums/internal/domain/models"
	"github.com/Anchor-Protocol/terrariums/internal/usecase"
)

// StoreAdapter is the file-backed reference store. The snapshot is loaded
// once at construction and every save writes the whole merged table, so
// entries recorded by earlier runs survive runs that never touch them.
//
// Writes are serialized by a single RWMutex; concurrent processes sharing
// one refs file need external locking.
type StoreAdapter struct {
	log    *slog.Logger
	path   string
	copies []string

	mu       sync.RWMutex
	snapshot models.RefSnapshot
}

// NewStoreAdapter creates a reference store over cfg's refs paths and loads
// the existing file. A missing file is an empty store, not an error.
func NewStoreAdapter(cfg *config.RuntimeConfig, log *slog.Logger) (*StoreAdapter, error) {
	s := &StoreAdapter{
		log:      log.With("component", "RefStore"),
		path:     cfg.RefsPath,
		copies:   cfg.RefsCopies,
		snapshot: make(models.RefSnapshot),
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load refs: %w", err)
	}

	return s, nil
}

func (s *StoreAdapter) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("no refs file yet", "path", s.path)
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &s.snapshot)
}

// CodeID returns the latest stored code ID for (network, contract).
func (s *StoreAdapter) CodeID(network, contract string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.snapshot[network][contract]
	if !ok || ref.CodeID == "" {
		return "", false
	}
	return ref.CodeID, true
}

// SetCodeID overwrites the code ID for (network, contract) in memory.
func (s *StoreAdapter) SetCodeID(network, contract, codeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ref(network, contract).CodeID = codeID
}

// Address returns the latest stored contract address for (network, contract).
func (s *StoreAdapter) Address(network, contract string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.snapshot[network][contract]
	if !ok || ref.ContractAddress == "" {
		return "", false
	}
	return ref.ContractAddress, true
}

// SetAddress overwrites the contract address for (network, contract) in
// memory.
func (s *StoreAdapter) SetAddress(network, contract, address string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ref(network, contract).ContractAddress = address
}

// ref returns the mutable entry for (network, contract), creating it if
// needed. Callers must hold the write lock.
func (s *StoreAdapter) ref(network, contract string) *models.ContractRef {
	if s.snapshot[network] == nil {
		s.snapshot[network] = make(map[string]*models.ContractRef)
	}
	if s.snapshot[network][contract] == nil {
		s.snapshot[network][contract] = &models.ContractRef{}
	}
	return s.snapshot[network][contract]
}

// Snapshot returns a deep copy of the full reference table.
func (s *StoreAdapter) Snapshot() models.RefSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.Clone()
}

// SaveRefs serializes the snapshot to the primary path and mirrors identical
// copies to every configured copy target.
func (s *StoreAdapter) SaveRefs(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.snapshot, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to save refs to %s: %w", s.path, err)
	}

	for _, copyPath := range s.copies {
		if err := writeFileAtomic(copyPath, data); err != nil {
			return fmt.Errorf("failed to mirror refs to %s: %w", copyPath, err)
		}
		s.log.Debug("mirrored refs", "path", copyPath)
	}

	return nil
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// partial file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// Ensure the adapter implements the interface
var _ usecase.ReferenceStore = (*StoreAdapter)(nil)

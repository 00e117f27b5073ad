package storage

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

var _ VerifierStore = (*MemStore)(nil)

// MemStore keeps verifier state in memory. Suitable for tests and
// short-lived processes; nothing survives a restart.
type MemStore struct {
	mu sync.RWMutex

	rates     map[common.Address]uint64
	processed map[common.Hash]*ProcessedClaim
}

func NewMemStore() *MemStore {
	return &MemStore{
		rates:     make(map[common.Address]uint64),
		processed: make(map[common.Hash]*ProcessedClaim),
	}
}

func (m *MemStore) LastAccepted(submitter common.Address) (uint64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.rates[submitter]
	return s, ok, nil
}

func (m *MemStore) RecordAccepted(submitter common.Address, seconds uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rates[submitter] = seconds
	return nil
}

func (m *MemStore) MarkProcessed(id common.Hash, rec *ProcessedClaim) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed[id] = rec
	return nil
}

func (m *MemStore) Processed(id common.Hash) (*ProcessedClaim, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.processed[id]
	if !ok {
		return nil, ErrNotFound
	}

	return rec, nil
}

func (m *MemStore) Close() error {
	return nil
}

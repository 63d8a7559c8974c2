package internal

import "sync"

// MemoryStorage is an in-process Storage, used in tests in place of the filesystem.
// Load and Save copy the ledger so callers never share state with the store.
type MemoryStorage struct {
	mu     sync.Mutex
	ledger *Ledger
	saves  int
}

// NewMemoryStorage returns a store that does not exist yet; the first Load initializes it
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		s.ledger = NewLedger()
		s.saves++
	}
	return s.ledger.Clone(), nil
}

func (s *MemoryStorage) Save(ledger *Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = ledger.Clone()
	s.saves++
	return nil
}

// Exists reports whether anything has been persisted yet
func (s *MemoryStorage) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger != nil
}

// Saves returns how many times state was persisted, including initialization
func (s *MemoryStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

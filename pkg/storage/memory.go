package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = make(map[string][]byte)
	return nil
}

// SaveReport stores an encoded copy so later changes to the caller's report
// are not visible through the store.
func (s *MemoryStore) SaveReport(_ context.Context, record Record) error {
	payload, err := EncodeRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reports == nil {
		return errors.New("store is not initialized")
	}
	s.reports[record.ID] = payload
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, id string) (Record, bool, error) {
	s.mu.RLock()
	payload, ok := s.reports[id]
	s.mu.RUnlock()

	if !ok {
		return Record{}, false, nil
	}
	record, err := DecodeRecord(payload)
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

func (s *MemoryStore) ListReports(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.reports))
	for _, payload := range s.reports {
		record, err := DecodeRecord(payload)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, record.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

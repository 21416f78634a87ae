package repo

import (
	"context"
	"sync"
)

type MemoryStore[T Record] struct {
	mu      sync.RWMutex
	records []T
}

func NewMemoryStore[T Record](records ...T) *MemoryStore[T] {
	return &MemoryStore[T]{records: append([]T(nil), records...)}
}

func (s *MemoryStore[T]) Find(ctx context.Context, id string) (T, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, rec := range s.records {
		if rec.Identifier() == id {
			return rec, i, nil
		}
	}
	var zero T
	return zero, -1, ErrNotFound
}

func (s *MemoryStore[T]) Insert(ctx context.Context, rec T) error {
	if rec.Identifier() == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore[T]) RemoveAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrOutOfRange
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

func (s *MemoryStore[T]) All(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.records...), nil
}

func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

package memory

import (
	"context"
	"sync"

	"word-quiz/internal/domain"
)

// ScoreStore keeps high scores in process memory; ids start at 1 like an auto-increment column.
type ScoreStore struct {
	mu      sync.RWMutex
	records []domain.ScoreRecord
	nextID  int64
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{nextID: 1}
}

func (s *ScoreStore) Append(_ context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, record)
	return record, nil
}

func (s *ScoreStore) ListAll(_ context.Context) ([]domain.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ScoreRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

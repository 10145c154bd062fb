package sqlstore

import (
	"context"
	"fmt"

	"word-quiz/internal/domain"
)

// ScoreStore keeps high scores in the append-only scores table.
type ScoreStore struct {
	db *DB
}

func NewScoreStore(db *DB) *ScoreStore {
	return &ScoreStore{db: db}
}

func (s *ScoreStore) Append(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	result, err := s.db.ExecContext(ctx, "INSERT INTO scores (score, difficulty) VALUES (?, ?)", record.Score, int(record.Difficulty))
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: insert score: %w", domain.ErrPersistence, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: read score id: %w", domain.ErrPersistence, err)
	}
	record.ID = id
	return record, nil
}

func (s *ScoreStore) ListAll(ctx context.Context) ([]domain.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, score, difficulty FROM scores ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var records []domain.ScoreRecord
	for rows.Next() {
		var (
			record     domain.ScoreRecord
			difficulty int
		)
		if err := rows.Scan(&record.ID, &record.Score, &difficulty); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		record.Difficulty = domain.Difficulty(difficulty)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return records, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"word-quiz/internal/domain"
)

// ScoreStore keeps high scores in the Postgres scores table.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

// Connect opens a pool and verifies the server answers.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return pool, nil
}

func (s *ScoreStore) Append(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scores (score, difficulty) VALUES ($1, $2) RETURNING id`,
		record.Score, int(record.Difficulty),
	).Scan(&record.ID)
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("%w: insert score: %w", domain.ErrPersistence, err)
	}
	return record, nil
}

func (s *ScoreStore) ListAll(ctx context.Context) ([]domain.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, score, difficulty FROM scores ORDER BY id`)
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

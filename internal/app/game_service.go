package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"word-quiz/internal/domain"
)

// SessionRepository abstracts where live game sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogRepository loads the item catalog (from cache/backing asset store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) (domain.Catalog, error)
}

// ScoreStore persists completed-session results.
type ScoreStore interface {
	Append(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error)
	ListAll(ctx context.Context) ([]domain.ScoreRecord, error)
}

// GameOptions tunes a GameService.
type GameOptions struct {
	QuestionCount int
	// FeedbackDelay is how long a correct answer stays on screen before the next question.
	FeedbackDelay time.Duration
	Logger        *slog.Logger
	// NewID generates session IDs; defaults to random UUIDs.
	NewID func() string
	// SessionOptions are applied to every new session (e.g. a seeded random source in tests).
	SessionOptions []SessionOption
}

// GameService contains the game use cases shared by every presentation.
type GameService struct {
	sessions SessionRepository
	catalogs CatalogRepository
	scores   ScoreStore
	opts     GameOptions
	logger   *slog.Logger
}

func NewGameService(sessions SessionRepository, catalogs CatalogRepository, scores ScoreStore, opts GameOptions) *GameService {
	if opts.QuestionCount == 0 {
		opts.QuestionCount = 5
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		sessions: sessions,
		catalogs: catalogs,
		scores:   scores,
		opts:     opts,
		logger:   logger.With("component", "game"),
	}
}

// Start creates a session for the given difficulty and deals its first question.
func (g *GameService) Start(ctx context.Context, difficulty int, listener Listener) (string, domain.Question, error) {
	diff, err := domain.ParseDifficulty(difficulty)
	if err != nil {
		return "", domain.Question{}, err
	}
	catalog, err := g.catalogs.GetCatalog(ctx)
	if err != nil {
		return "", domain.Question{}, fmt.Errorf("load catalog: %w", err)
	}

	opts := append([]SessionOption{WithListener(listener), WithLogger(g.logger)}, g.opts.SessionOptions...)
	session, err := NewSession(g.opts.NewID(), diff, opts...)
	if err != nil {
		return "", domain.Question{}, err
	}
	if err := session.Start(catalog, g.opts.QuestionCount); err != nil {
		return "", domain.Question{}, err
	}
	q, err := session.NextQuestion()
	if err != nil {
		return "", domain.Question{}, err
	}

	g.sessions.Put(session)
	g.logger.Info("session started",
		slog.String("session_id", session.ID()),
		slog.String("difficulty", diff.String()),
		slog.Int("catalog_size", catalog.Len()))
	return session.ID(), q, nil
}

// Guess submits a word. A correct, non-final guess schedules the next question after the
// feedback delay; the final guess persists the score and returns the summary.
func (g *GameService) Guess(ctx context.Context, sessionID, word string) (domain.GuessResult, *domain.Summary, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.GuessResult{}, nil, domain.ErrSessionNotFound
	}

	result, err := session.SubmitGuess(word)
	if err != nil {
		return domain.GuessResult{}, nil, err
	}
	if !result.Correct {
		return result, nil, nil
	}

	if !result.Completed {
		if err := session.ScheduleAdvance(g.opts.FeedbackDelay); err != nil {
			return result, nil, err
		}
		return result, nil, nil
	}

	summary, err := session.Summary()
	if err != nil {
		return result, nil, err
	}
	record, err := session.Persist(ctx, g.scores)
	if err != nil {
		g.logger.Error("persist score failed", slog.String("session_id", sessionID), slog.Any("error", err))
		return result, &summary, err
	}
	summary.Record = &record
	g.logger.Info("session completed",
		slog.String("session_id", sessionID),
		slog.Int("total_guesses", summary.TotalGuesses),
		slog.Float64("accuracy", summary.Accuracy))
	return result, &summary, nil
}

// Current returns the question currently shown in a session.
func (g *GameService) Current(_ context.Context, sessionID string) (domain.Question, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.Question{}, domain.ErrSessionNotFound
	}
	return session.Current()
}

// PlayAgain resets a session to a fresh play-through.
func (g *GameService) PlayAgain(_ context.Context, sessionID string) (domain.Question, error) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return domain.Question{}, domain.ErrSessionNotFound
	}
	return session.Reset()
}

// Leave tears a session down, cancelling any pending advance.
func (g *GameService) Leave(_ context.Context, sessionID string) {
	session, ok := g.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	g.sessions.Delete(sessionID)
	g.logger.Debug("session closed", slog.String("session_id", sessionID))
}

// Scores lists every persisted high score in insertion order.
func (g *GameService) Scores(ctx context.Context) ([]domain.ScoreRecord, error) {
	return g.scores.ListAll(ctx)
}

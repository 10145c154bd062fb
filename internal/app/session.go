package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"word-quiz/internal/domain"
)

// Session is one play-through: question queue, choices, guesses and score.
// All transitions are serialised by mu; the only asynchrony is the advance timer.
type Session struct {
	id         string
	difficulty domain.Difficulty
	rnd        *rand.Rand
	listener   Listener
	logger     *slog.Logger

	mu            sync.Mutex
	catalog       domain.Catalog
	questionCount int
	remaining     []domain.Item
	current       domain.Item
	choices       []string
	disabled      map[string]struct{}
	score         int
	totalGuesses  int
	accuracy      float64
	state         domain.State
	persisted     bool
	closed        bool
	timer         *time.Timer
	generation    uint64
}

// SessionOption customises a new session.
type SessionOption func(*Session)

// WithRand fixes the random source, mostly for deterministic tests.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

func WithListener(l Listener) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.listener = l
		}
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session in the NotStarted state.
func NewSession(id string, difficulty domain.Difficulty, opts ...SessionOption) (*Session, error) {
	if difficulty.ChoiceCount() == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDifficulty, int(difficulty))
	}
	s := &Session{
		id:         id,
		difficulty: difficulty,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		listener:   NopListener{},
		logger:     slog.Default(),
		state:      domain.StateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) Difficulty() domain.Difficulty { return s.difficulty }

// Start draws questionCount distinct items from the catalog and zeroes the counters.
func (s *Session) Start(catalog domain.Catalog, questionCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(catalog, questionCount)
}

func (s *Session) startLocked(catalog domain.Catalog, questionCount int) error {
	if s.closed {
		return domain.ErrSessionClosed
	}
	if questionCount < 1 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuestionCount, questionCount)
	}
	if catalog.Len() < questionCount {
		return fmt.Errorf("%w: have %d items, need %d", domain.ErrInsufficientCatalog, catalog.Len(), questionCount)
	}

	s.cancelTimerLocked()
	s.catalog = catalog
	s.questionCount = questionCount
	s.remaining = make([]domain.Item, 0, questionCount)
	for _, i := range sampleIndices(s.rnd, catalog.Len(), questionCount) {
		s.remaining = append(s.remaining, catalog.Item(i))
	}
	s.current = domain.Item{}
	s.choices = nil
	s.disabled = nil
	s.score = 0
	s.totalGuesses = 0
	s.accuracy = 0
	s.persisted = false
	s.state = domain.StateNotStarted
	return nil
}

// HasNext reports whether questions remain in the queue.
func (s *Session) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.remaining) > 0
}

// NextQuestion pops the next answer and deals its choices. It is only valid before the
// first question or after a correct answer.
func (s *Session) NextQuestion() (domain.Question, error) {
	s.mu.Lock()
	if !s.closed && (s.state == domain.StateQuestionActive || s.state == domain.StateIncorrect) {
		s.mu.Unlock()
		return domain.Question{}, domain.ErrQuestionPending
	}
	q, err := s.nextQuestionLocked()
	s.mu.Unlock()
	if err != nil {
		return domain.Question{}, err
	}
	s.listener.OnQuestion(s.id, q)
	return q, nil
}

func (s *Session) nextQuestionLocked() (domain.Question, error) {
	if s.closed {
		return domain.Question{}, domain.ErrSessionClosed
	}
	if len(s.remaining) == 0 {
		return domain.Question{}, domain.ErrEmptyQueue
	}

	answer := s.remaining[0]
	choices, err := s.dealChoicesLocked(answer.Word)
	if err != nil {
		return domain.Question{}, err
	}

	s.remaining = s.remaining[1:]
	s.current = answer
	s.choices = choices
	s.disabled = make(map[string]struct{}, len(choices))
	s.state = domain.StateQuestionActive
	return s.questionLocked(), nil
}

// dealChoicesLocked picks choiceCount-1 distinct distractors and inserts the answer at a random slot.
func (s *Session) dealChoicesLocked(answerWord string) ([]string, error) {
	choiceCount := s.difficulty.ChoiceCount()
	pool := make([]string, 0, s.catalog.Len())
	for _, w := range s.catalog.Words() {
		if w != answerWord {
			pool = append(pool, w)
		}
	}
	need := choiceCount - 1
	if len(pool) < need {
		return nil, fmt.Errorf("%w: need %d distractors, catalog has %d other words", domain.ErrInsufficientDistinctWords, need, len(pool))
	}
	distractors := sampleStrings(s.rnd, pool, need)
	return insertAt(distractors, s.rnd.Intn(choiceCount), answerWord), nil
}

func (s *Session) questionLocked() domain.Question {
	choices := make([]string, len(s.choices))
	copy(choices, s.choices)
	return domain.Question{
		Number:   s.score + 1,
		Total:    s.questionCount,
		Category: s.current.Category,
		ImageRef: s.current.ImageRef,
		Choices:  choices,
	}
}

// Current returns the question on screen, if any.
func (s *Session) Current() (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case domain.StateQuestionActive, domain.StateIncorrect, domain.StateCorrect:
		return s.questionLocked(), nil
	}
	return domain.Question{}, domain.ErrNoActiveQuestion
}

// SubmitGuess evaluates one guess. Rejected guesses (wrong state, unknown or disabled choice)
// leave the session untouched; every accepted guess counts toward totalGuesses.
func (s *Session) SubmitGuess(word string) (domain.GuessResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.GuessResult{}, domain.ErrSessionClosed
	}
	if s.state != domain.StateQuestionActive && s.state != domain.StateIncorrect {
		s.mu.Unlock()
		return domain.GuessResult{}, domain.ErrNoActiveQuestion
	}
	if !containsString(s.choices, word) {
		s.mu.Unlock()
		return domain.GuessResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownChoice, word)
	}
	if _, tried := s.disabled[word]; tried {
		s.mu.Unlock()
		return domain.GuessResult{}, fmt.Errorf("%w: %q", domain.ErrChoiceDisabled, word)
	}

	s.totalGuesses++
	correct := word == s.current.Word
	if correct {
		s.score++
		s.state = domain.StateCorrect
		if s.score == s.questionCount {
			s.accuracy = domain.Accuracy(s.questionCount, s.totalGuesses)
			s.state = domain.StateCompleted
		}
	} else {
		s.disabled[word] = struct{}{}
		s.state = domain.StateIncorrect
	}
	result := domain.GuessResult{
		Word:         word,
		Correct:      correct,
		State:        s.state,
		Score:        s.score,
		TotalGuesses: s.totalGuesses,
		Completed:    s.state == domain.StateCompleted,
		Accuracy:     s.accuracy,
	}
	var summary domain.Summary
	if result.Completed {
		summary = s.summaryLocked()
	}
	s.mu.Unlock()

	if !correct {
		s.listener.OnIncorrect(s.id, result)
		return result, nil
	}
	s.listener.OnCorrect(s.id, result)
	if result.Completed {
		s.listener.OnComplete(s.id, summary)
	}
	return result, nil
}

func (s *Session) summaryLocked() domain.Summary {
	return domain.Summary{
		Questions:    s.questionCount,
		TotalGuesses: s.totalGuesses,
		Accuracy:     s.accuracy,
		Difficulty:   s.difficulty,
	}
}

// Persist writes the score of a completed session exactly once.
func (s *Session) Persist(ctx context.Context, store ScoreStore) (domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateCompleted {
		return domain.ScoreRecord{}, domain.ErrSessionNotCompleted
	}
	if s.persisted {
		return domain.ScoreRecord{}, domain.ErrAlreadyPersisted
	}

	saved, err := store.Append(ctx, domain.ScoreRecord{Score: s.accuracy, Difficulty: s.difficulty})
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		return domain.ScoreRecord{}, err
	}
	s.persisted = true
	return saved, nil
}

// ScheduleAdvance moves to the next question after delay. A non-positive delay advances now.
// Only one advance can be pending; Reset and Close cancel it.
func (s *Session) ScheduleAdvance(delay time.Duration) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	if s.state != domain.StateCorrect {
		s.mu.Unlock()
		return domain.ErrNoActiveQuestion
	}
	if len(s.remaining) == 0 {
		s.mu.Unlock()
		return domain.ErrEmptyQueue
	}

	if delay <= 0 {
		s.cancelTimerLocked()
		q, err := s.nextQuestionLocked()
		s.mu.Unlock()
		if err != nil {
			return err
		}
		s.listener.OnQuestion(s.id, q)
		return nil
	}

	s.cancelTimerLocked()
	gen := s.generation
	s.timer = time.AfterFunc(delay, func() { s.advance(gen) })
	s.mu.Unlock()
	return nil
}

func (s *Session) advance(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation || s.state != domain.StateCorrect {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	q, err := s.nextQuestionLocked()
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("advance to next question failed", slog.String("session_id", s.id), slog.Any("error", err))
		s.listener.OnError(s.id, err)
		return
	}
	s.listener.OnQuestion(s.id, q)
}

// cancelTimerLocked stops any pending advance and invalidates callbacks already in flight.
func (s *Session) cancelTimerLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// AdvancePending reports whether a scheduled advance has not fired yet.
func (s *Session) AdvancePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Reset starts a fresh play-through over the same catalog and deals the first question.
func (s *Session) Reset() (domain.Question, error) {
	s.mu.Lock()
	if err := s.startLocked(s.catalog, s.questionCount); err != nil {
		s.mu.Unlock()
		return domain.Question{}, err
	}
	q, err := s.nextQuestionLocked()
	s.mu.Unlock()
	if err != nil {
		return domain.Question{}, err
	}
	s.listener.OnQuestion(s.id, q)
	return q, nil
}

// Close tears the session down; pending advances never fire afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
}

func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) TotalGuesses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalGuesses
}

// Accuracy is zero until the session completes.
func (s *Session) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accuracy
}

// Summary returns the end-of-game report of a completed session.
func (s *Session) Summary() (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateCompleted {
		return domain.Summary{}, domain.ErrSessionNotCompleted
	}
	return s.summaryLocked(), nil
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

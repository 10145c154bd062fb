package domain

import "errors"

var (
	// ErrAssetListing is returned when a category listing cannot be read.
	ErrAssetListing = errors.New("asset listing failed")
	// ErrInsufficientCatalog is returned when the catalog holds fewer items than questions requested.
	ErrInsufficientCatalog = errors.New("catalog too small for question count")
	// ErrEmptyQueue is returned when a question is requested after the queue ran out.
	ErrEmptyQueue = errors.New("no remaining questions")
	// ErrInsufficientDistinctWords indicates the catalog cannot fill every choice slot with a distinct word.
	ErrInsufficientDistinctWords = errors.New("not enough distinct words for choices")
	// ErrMalformedItemID indicates an item identifier without a category-word separator.
	ErrMalformedItemID = errors.New("malformed item id")
	// ErrPersistence wraps a rejected score write.
	ErrPersistence = errors.New("score persistence failed")
	// ErrStoreUnavailable indicates the score store could not be opened.
	ErrStoreUnavailable = errors.New("score store unavailable")

	ErrInvalidDifficulty    = errors.New("invalid difficulty")
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	// ErrNoActiveQuestion is returned when a guess arrives while no question accepts guesses.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrQuestionPending is returned when a new question is requested before the current one was answered.
	ErrQuestionPending = errors.New("current question not answered yet")
	ErrUnknownChoice   = errors.New("guess is not one of the current choices")
	ErrChoiceDisabled  = errors.New("choice already tried")
	// ErrSessionNotCompleted is returned when persisting a session that has not finished.
	ErrSessionNotCompleted = errors.New("session not completed")
	ErrAlreadyPersisted    = errors.New("session score already persisted")
	// ErrSessionNotFound is returned when a game session is unknown to the service.
	ErrSessionNotFound = errors.New("game session not found")
	ErrSessionClosed   = errors.New("game session closed")
)

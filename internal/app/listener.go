package app

import "word-quiz/internal/domain"

// Listener receives session notifications. Sessions call it after releasing their lock,
// so implementations may call back into the session; they should not block for long.
type Listener interface {
	OnQuestion(sessionID string, q domain.Question)
	OnCorrect(sessionID string, r domain.GuessResult)
	OnIncorrect(sessionID string, r domain.GuessResult)
	OnComplete(sessionID string, s domain.Summary)
	// OnError reports a failure on the advance timer, where no caller is waiting for a return value.
	OnError(sessionID string, err error)
}

// NopListener ignores every notification. Embed it to implement only what you need.
type NopListener struct{}

func (NopListener) OnQuestion(string, domain.Question) {}
func (NopListener) OnCorrect(string, domain.GuessResult) {}
func (NopListener) OnIncorrect(string, domain.GuessResult) {}
func (NopListener) OnComplete(string, domain.Summary) {}
func (NopListener) OnError(string, error) {}

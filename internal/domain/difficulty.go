package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty selects how many choices each question offers.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ParseDifficulty accepts only the three known values.
func ParseDifficulty(v int) (Difficulty, error) {
	switch d := Difficulty(v); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidDifficulty, v)
	}
}

// ParseDifficultyName accepts "easy", "medium", "hard" or their numeric form.
func ParseDifficultyName(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return ParseDifficulty(n)
}

// ChoiceCount is 2, 4 or 6. It returns 0 for a value that did not come through ParseDifficulty.
func (d Difficulty) ChoiceCount() int {
	switch d {
	case Easy:
		return 2
	case Medium:
		return 4
	case Hard:
		return 6
	}
	return 0
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// State is a step of the session state machine.
type State string

const (
	StateNotStarted     State = "not_started"
	StateQuestionActive State = "question_active"
	StateCorrect        State = "correct"
	StateIncorrect      State = "incorrect"
	StateCompleted      State = "completed"
)

package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions is returned when a session is loaded with an empty
	// question sequence. Callers should redirect to setup instead.
	ErrNoQuestions = errors.New("no questions to load")

	// ErrAlreadyAnswered is returned when the current question already
	// carries a submission; answer fields are set exactly once.
	ErrAlreadyAnswered = errors.New("current question already answered")
)

// StateError reports an operation invoked in the wrong session state.
// All such errors are caller misuse; there is no recovery path.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("quiz: cannot %s in %s state", e.Op, e.State)
}

// State is the session lifecycle state.
type State int

const (
	StateIdle      State = iota // no questions loaded
	StateReady                  // questions loaded, not started
	StateActive                 // accepting answers
	StateCompleted              // terminal per attempt
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

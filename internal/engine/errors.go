package engine

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyWorkout     = errors.New("log at least one exercise with a set")
	ErrUnknownMonster   = errors.New("unknown monster")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNameRequired     = errors.New("name is required")

	ErrBadExerciseFormat = errors.New("bad exercise format")
)

// GateError is a battle refusal surfaced through error flow (CLI exit paths).
type GateError struct {
	Reason  GateReason
	Message string
}

func (e GateError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("battle locked (%s)", e.Reason)
	}
	return e.Message
}

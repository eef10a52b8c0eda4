package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/session"
)

// Sentinel steps a Step.Apply may return instead of a real next step.
const (
	// StepDone ends the flow: the engine runs Finalize and clears the session.
	StepDone session.Step = "__done__"
	// StepCancelled ends the flow without Finalize, e.g. a "cancel" button.
	StepCancelled session.Step = "__cancelled__"
)

// ValidationError rejects one step input. The engine re-prompts with the
// reason and leaves the session untouched; it is never a system failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Reject builds a ValidationError.
func Reject(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a step-input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Actor is the resolved identity behind one conversation.
type Actor struct {
	User   *models.User
	ChatID int64
}

// Step is one prompt/validate/advance unit of a flow.
//
// Apply validates the input against the current scratch and returns the
// next step, StepDone or StepCancelled. It must not write to scratch
// before the input is accepted: on any returned error the engine keeps
// the stored session as-is and repeated invalid input must never change
// state. Returning the current step with a nil error is a valid
// self-transition (multi-select toggles, page turns) and is persisted.
type Step struct {
	Prompt func(actor Actor, scratch session.Scratch) Prompt
	Apply  func(ctx context.Context, actor Actor, scratch session.Scratch, in Input) (session.Step, error)
}

// Definition is one immutable flow: ordered steps plus the terminal
// action. A single Definition instance is shared by all sessions.
type Definition struct {
	Kind session.FlowKind

	// Triggers are the exact inputs that start the flow.
	Triggers []string

	// AdminOnly flows refuse to start for non-admin actors, before any
	// session is created.
	AdminOnly bool

	// Begin checks preconditions and seeds scratch, returning the first
	// step. A ValidationError refuses the start with a user-visible
	// reason and no session is created.
	Begin func(ctx context.Context, actor Actor, scratch session.Scratch) (session.Step, error)

	Steps map[session.Step]Step

	// Finalize performs the domain write with the accumulated scratch
	// and returns the success message. It runs at most once per session.
	Finalize func(ctx context.Context, actor Actor, scratch session.Scratch) (string, error)
}

package llm

import (
	"context"
	"errors"
)

// Completion is the normalized result of a model invocation. Every provider
// returns this shape, so callers never inspect provider-specific payloads.
type Completion struct {
	Content string
}

// Completer invokes a language model with an assembled prompt as a single
// instruction and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// ErrCompletion marks a failed model invocation. It is fatal to the current
// turn: no conversation state may be written when it is returned.
var ErrCompletion = errors.New("completion request failed")

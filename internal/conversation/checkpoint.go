package conversation

import (
	"context"
	"errors"
)

// Store is a checkpoint store: durable storage mapping a thread identifier
// to its conversation state. Load of an unknown thread returns an empty
// state, never an error — threads are created lazily on first turn.
type Store interface {
	Load(ctx context.Context, threadID string) (*State, error)
	Save(ctx context.Context, state *State) error
}

// ErrStorageUnavailable marks an unreachable checkpoint backend. The engine
// degrades a failed load to a fresh empty thread; a failed save is surfaced.
var ErrStorageUnavailable = errors.New("checkpoint storage unavailable")

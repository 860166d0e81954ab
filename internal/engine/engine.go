package engine

import (
	"context"
	"log"
	"sync"

	"github.com/desoft-apps/fiscalito/internal/conversation"
)

// Engine orchestrates the turn processor over named conversation threads,
// loading and saving state through the checkpoint store.
//
// Calls on the same thread are serialized by a per-thread mutex so the
// second call always sees every turn the first one appended. Calls on
// different threads run independently.
type Engine struct {
	store  conversation.Store
	proc   *TurnProcessor
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a conversation engine
func New(store conversation.Store, proc *TurnProcessor, logger *log.Logger) *Engine {
	return &Engine{
		store:  store,
		proc:   proc,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (e *Engine) threadLock(threadID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[threadID] = lock
	}
	return lock
}

// Handle runs one turn on a thread and returns the assistant's reply along
// with the full turn history after the turn.
//
// A checkpoint load failure degrades to a fresh empty thread so the
// conversation stays available; a processing error (model failure) leaves
// the stored state unchanged and is returned to the caller.
func (e *Engine) Handle(ctx context.Context, threadID, displayName, userText string) (string, []conversation.Turn, error) {
	lock := e.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	state, err := e.store.Load(ctx, threadID)
	if err != nil {
		e.logger.Printf("state load failed for thread %s, starting fresh: %v", threadID, err)
		state = conversation.NewState(threadID)
	}

	reply, err := e.proc.Process(ctx, state, displayName, userText)
	if err != nil {
		return "", nil, err
	}

	if err := e.store.Save(ctx, state); err != nil {
		return "", nil, err
	}

	return reply, state.Turns, nil
}

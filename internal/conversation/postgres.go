package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/desoft-apps/fiscalito/internal/db"
)

// PostgresStore persists conversation state in the turns table, one row per
// turn, sequenced within the thread.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore creates a Postgres-backed checkpoint store
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Load reads the full turn log of a thread. An unknown thread yields an
// empty state.
func (p *PostgresStore) Load(ctx context.Context, threadID string) (*State, error) {
	rows, err := p.db.GetTurns(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	state := NewState(threadID)
	for _, row := range rows {
		state.Append(Turn{Role: Role(row.Role), Content: row.Content})
	}
	return state, nil
}

// Save persists the state. Rows are keyed by (thread_id, seq), so turns the
// table already holds are untouched and only the new tail is written.
func (p *PostgresStore) Save(ctx context.Context, state *State) error {
	turns := make([]*db.TurnRow, len(state.Turns))
	for i, turn := range state.Turns {
		turns[i] = &db.TurnRow{
			ID:       uuid.New(),
			ThreadID: state.ThreadID,
			Seq:      i,
			Role:     string(turn.Role),
			Content:  turn.Content,
		}
	}
	if err := p.db.AppendTurns(ctx, turns); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

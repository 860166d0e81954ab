package conversation

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a thread's history. Immutable once appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the append-only turn log of one conversation thread. Insertion
// order is significant; turns are never rewritten or removed here.
type State struct {
	ThreadID string `json:"thread_id"`
	Turns    []Turn `json:"turns"`
}

// NewState creates an empty state for a thread
func NewState(threadID string) *State {
	return &State{ThreadID: threadID}
}

// Append adds turns to the end of the log
func (s *State) Append(turns ...Turn) {
	s.Turns = append(s.Turns, turns...)
}

// Clone returns a deep copy so callers can hand out state without aliasing
func (s *State) Clone() *State {
	turns := make([]Turn, len(s.Turns))
	copy(turns, s.Turns)
	return &State{ThreadID: s.ThreadID, Turns: turns}
}

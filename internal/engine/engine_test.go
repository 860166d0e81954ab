package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desoft-apps/fiscalito/internal/conversation"
	"github.com/desoft-apps/fiscalito/internal/llm"
)

type fakeRetriever struct {
	docs []string
	err  error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.docs) > k {
		return f.docs[:k], nil
	}
	return f.docs, nil
}

type fakeCompleter struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.err != nil {
		return llm.Completion{}, f.err
	}
	return llm.Completion{Content: f.reply}, nil
}

func testEngine(retriever Retriever, completer llm.Completer) (*Engine, *conversation.MemoryStore) {
	logger := log.New(io.Discard, "", 0)
	proc := NewTurnProcessor(retriever, completer, Options{TopK: 3}, logger)
	store := conversation.NewMemoryStore()
	return New(store, proc, logger), store
}

func TestHandleAppendsUserAndAssistantTurns(t *testing.T) {
	completer := &fakeCompleter{reply: "La ONAT recauda los tributos."}
	eng, store := testEngine(&fakeRetriever{docs: []string{"doc"}}, completer)

	reply, turns, err := eng.Handle(context.Background(), "t1", "Ana", "¿Qué es la ONAT?")
	require.NoError(t, err)
	assert.Equal(t, "La ONAT recauda los tributos.", reply)
	require.Len(t, turns, 2)
	assert.Equal(t, conversation.Turn{Role: conversation.RoleUser, Content: "¿Qué es la ONAT?"}, turns[0])
	assert.Equal(t, conversation.Turn{Role: conversation.RoleAssistant, Content: "La ONAT recauda los tributos."}, turns[1])

	saved, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, turns, saved.Turns)
}

func TestHandleSecondTurnSeesFirstExchange(t *testing.T) {
	completer := &fakeCompleter{reply: "respuesta"}
	eng, _ := testEngine(&fakeRetriever{}, completer)

	_, _, err := eng.Handle(context.Background(), "t1", "Ana", "¿Qué es la ONAT?")
	require.NoError(t, err)
	_, turns, err := eng.Handle(context.Background(), "t1", "Ana", "¿Y el Vector Fiscal?")
	require.NoError(t, err)
	require.Len(t, turns, 4)

	require.Len(t, completer.prompts, 2)
	second := completer.prompts[1]
	assert.Contains(t, second, "user: ¿Qué es la ONAT?\nassistant: respuesta")
	assert.Contains(t, second, "Pregunta del usuario: ¿Y el Vector Fiscal?")
}

func TestHandleFirstTurnHasEmptyHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "hola"}
	eng, _ := testEngine(&fakeRetriever{}, completer)

	_, _, err := eng.Handle(context.Background(), "t1", "Ana", "hola")
	require.NoError(t, err)
	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Historial de la conversación:\n\n")
}

func TestHandleCompletionFailureLeavesStateUntouched(t *testing.T) {
	boom := fmt.Errorf("%w: model unreachable", llm.ErrCompletion)
	eng, store := testEngine(&fakeRetriever{}, &fakeCompleter{err: boom})

	_, _, err := eng.Handle(context.Background(), "t1", "Ana", "hola")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrCompletion))

	saved, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, saved.Turns)
}

func TestHandleRetrievalFailureDegradesToEmptyContext(t *testing.T) {
	completer := &fakeCompleter{reply: "sin contexto"}
	eng, _ := testEngine(&fakeRetriever{err: errors.New("index down")}, completer)

	reply, turns, err := eng.Handle(context.Background(), "t1", "Ana", "hola")
	require.NoError(t, err)
	assert.Equal(t, "sin contexto", reply)
	assert.Len(t, turns, 2)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Contexto relevante:\n\n")
}

func TestHandleThreadsAreIndependent(t *testing.T) {
	completer := &fakeCompleter{reply: "r"}
	eng, _ := testEngine(&fakeRetriever{}, completer)

	_, turnsA, err := eng.Handle(context.Background(), "a", "Ana", "hola")
	require.NoError(t, err)
	_, turnsB, err := eng.Handle(context.Background(), "b", "Luis", "buenas")
	require.NoError(t, err)

	assert.Len(t, turnsA, 2)
	assert.Len(t, turnsB, 2)
	assert.Contains(t, completer.prompts[1], "Historial de la conversación:\n\n")
}

func TestHandleConcurrentSameThread(t *testing.T) {
	completer := &fakeCompleter{reply: "r"}
	eng, store := testEngine(&fakeRetriever{}, completer)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := eng.Handle(context.Background(), "t1", "Ana", fmt.Sprintf("mensaje %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	saved, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, saved.Turns, 2*n)
	for i, turn := range saved.Turns {
		if i%2 == 0 {
			assert.Equal(t, conversation.RoleUser, turn.Role)
		} else {
			assert.Equal(t, conversation.RoleAssistant, turn.Role)
		}
	}
}

package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/desoft-apps/fiscalito/internal/conversation"
	"github.com/desoft-apps/fiscalito/internal/llm"
)

// Retriever is the document-retrieval capability the processor consumes:
// the k most relevant chunk texts for a query, best first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// Options bound the processor's per-turn work.
type Options struct {
	TopK            int
	MaxContextChars int
}

// TurnProcessor runs one conversation turn: retrieve context, compose the
// prompt, invoke the model, append the exchange to the state. Each turn
// walks retrieving → composing → generating → appending and returns the
// thread to awaiting input.
type TurnProcessor struct {
	retriever Retriever
	completer llm.Completer
	opts      Options
	logger    *log.Logger
}

// NewTurnProcessor creates a processor
func NewTurnProcessor(retriever Retriever, completer llm.Completer, opts Options, logger *log.Logger) *TurnProcessor {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	return &TurnProcessor{
		retriever: retriever,
		completer: completer,
		opts:      opts,
		logger:    logger,
	}
}

// Process mutates state with the user turn and the model's reply and returns
// the reply text.
//
// A retrieval failure degrades to an empty context so the conversation still
// gets an answer. A completion failure is fatal to the turn: the state is
// left untouched so the log never holds a user turn without its reply, and
// the error is surfaced rather than substituted with fabricated content.
func (p *TurnProcessor) Process(ctx context.Context, state *conversation.State, displayName, userText string) (string, error) {
	// A blank message is processed with an empty query: retrieval sees no
	// text and contributes no context, but the turn still completes. This
	// mirrors the deliberate degradation of the original service when a
	// message carries no user text.
	contextTexts, err := p.retriever.Retrieve(ctx, userText, p.opts.TopK)
	if err != nil {
		p.logger.Printf("retrieval degraded to empty context for thread %s: %v", state.ThreadID, err)
		contextTexts = nil
	}

	prompt := BuildPrompt(SystemPolicy(displayName), state.Turns, contextTexts, userText, p.opts.MaxContextChars)

	completion, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("turn aborted: %w", err)
	}

	state.Append(
		conversation.Turn{Role: conversation.RoleUser, Content: userText},
		conversation.Turn{Role: conversation.RoleAssistant, Content: completion.Content},
	)
	return completion.Content, nil
}

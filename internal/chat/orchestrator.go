// Package chat composes retrieval, prompt assembly, and the language-model
// call into one request/response cycle per user turn.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamemate-ai/gamemate/internal/history"
	"github.com/gamemate-ai/gamemate/internal/llm"
	"github.com/gamemate-ai/gamemate/internal/retriever"
	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// ErrGenerationUnavailable marks turns that failed because an external
// provider (embedding or LLM) could not be reached. The session transcript is
// left untouched when this is returned.
var ErrGenerationUnavailable = errors.New("generation unavailable")

// Options configures an Orchestrator.
type Options struct {
	// Model overrides the provider's default chat model when non-empty.
	Model string
	// ResponseLanguage is embedded in the persona instruction.
	ResponseLanguage string
	// TranslateQueries enables the LLM-assisted translation of user input
	// into an English retrieval query. When false the input is used verbatim.
	TranslateQueries bool
	MaxTokens        int
	Temperature      float64
}

// Orchestrator handles one conversational turn at a time. It is safe for
// concurrent use across sessions; per-session append ordering is the history
// store's responsibility.
type Orchestrator struct {
	retriever *retriever.Retriever
	provider  llm.Provider
	history   history.Store
	opts      Options
}

// NewOrchestrator wires a ready-to-use conversation pipeline.
func NewOrchestrator(r *retriever.Retriever, provider llm.Provider, hist history.Store, opts Options) *Orchestrator {
	if opts.ResponseLanguage == "" {
		opts.ResponseLanguage = defaultResponseLanguage
	}
	return &Orchestrator{
		retriever: r,
		provider:  provider,
		history:   hist,
		opts:      opts,
	}
}

// HandleTurn answers a single user turn for the given session. The user and
// assistant turns are appended to the transcript only after the answer has
// been produced, so a failed turn never leaves a partial transcript entry.
func (o *Orchestrator) HandleTurn(ctx context.Context, sessionID, userInput string) (string, error) {
	prior, err := o.history.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("loading transcript: %w", err)
	}

	query, err := o.retrievalQuery(ctx, userInput)
	if err != nil {
		return "", fmt.Errorf("%w: translating query: %v", ErrGenerationUnavailable, err)
	}

	docs, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: retrieving context: %v", ErrGenerationUnavailable, err)
	}

	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model:       o.opts.Model,
		Messages:    o.buildMessages(prior, joinDocs(docs), userInput),
		MaxTokens:   o.opts.MaxTokens,
		Temperature: o.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	answer := strings.TrimSpace(resp.Content)

	// An abandoned turn must not half-write the transcript; the append is the
	// first and only mutation of this turn.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.history.Append(ctx, sessionID,
		history.Turn{Role: history.RoleUser, Content: userInput},
		history.Turn{Role: history.RoleAssistant, Content: answer},
	); err != nil {
		return "", fmt.Errorf("recording transcript: %w", err)
	}

	return answer, nil
}

// retrievalQuery normalizes user input into the query fed to the retriever.
// The same function applies to every turn so retrieval quality stays
// reproducible: either always a pass-through or always an LLM translation.
func (o *Orchestrator) retrievalQuery(ctx context.Context, userInput string) (string, error) {
	if !o.opts.TranslateQueries {
		return userInput, nil
	}

	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model: o.opts.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: translateInstruction},
			{Role: llm.RoleUser, Content: userInput},
		},
		MaxTokens:   256,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}

	query := strings.TrimSpace(resp.Content)
	if query == "" {
		return userInput, nil
	}
	return query, nil
}

// buildMessages assembles the prompt in fixed order: prior transcript turns,
// the retrieved-context system message, the persona instruction, then the
// new user turn.
func (o *Orchestrator) buildMessages(prior []history.Turn, context, userInput string) []llm.Message {
	messages := make([]llm.Message, 0, len(prior)+3)
	for _, t := range prior {
		messages = append(messages, llm.Message{Role: llm.Role(t.Role), Content: t.Content})
	}
	messages = append(messages,
		llm.Message{Role: llm.RoleSystem, Content: contextMessage(context)},
		llm.Message{Role: llm.RoleSystem, Content: personaMessage(o.opts.ResponseLanguage)},
		llm.Message{Role: llm.RoleUser, Content: userInput},
	)
	return messages
}

// joinDocs concatenates retrieved page contents newline-separated,
// preserving nearest-first order. No documents yields an empty context.
func joinDocs(docs []vectordb.Document) string {
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	return strings.Join(contents, "\n")
}

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gamemate-ai/gamemate/internal/history"
	"github.com/gamemate-ai/gamemate/internal/llm"
	"github.com/gamemate-ai/gamemate/internal/retriever"
	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// fakeStore satisfies vectordb.VectorStore with a canned result set, so
// orchestrator tests need neither embeddings nor a real index.
type fakeStore struct {
	results []vectordb.SearchResult
	err     error
	queries []string
}

func (f *fakeStore) AddDocuments(context.Context, []vectordb.Document) error { return nil }

func (f *fakeStore) Search(_ context.Context, query string, limit int) ([]vectordb.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.results) {
		limit = len(f.results)
	}
	return f.results[:limit], nil
}

func (f *fakeStore) IsEmpty() bool { return len(f.results) == 0 }
func (f *fakeStore) Count() int    { return len(f.results) }

// fakeProvider replays scripted completions and records every request.
type fakeProvider struct {
	replies  []string
	err      error
	requests []llm.CompletionRequest
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	reply := "ok"
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return &llm.CompletionResponse{Content: reply}, nil
}

func newTestOrchestrator(store *fakeStore, provider *fakeProvider, opts Options) (*Orchestrator, history.Store) {
	hist := history.NewMemoryStore(0)
	return NewOrchestrator(retriever.New(store, 2), provider, hist, opts), hist
}

func resultFor(id, content string) vectordb.SearchResult {
	return vectordb.SearchResult{
		Document:   vectordb.Document{ID: id, Content: content},
		Similarity: 0.9,
	}
}

func TestHandleTurn_PromptOrder(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		resultFor("10", "title: Alpha Quest | genres: RPG"),
		resultFor("20", "title: Beta Blast | genres: Shooter"),
	}}
	provider := &fakeProvider{replies: []string{"Try Alpha Quest."}}
	orch, _ := newTestOrchestrator(store, provider, Options{ResponseLanguage: "english"})

	answer, err := orch.HandleTurn(context.Background(), "s1", "recommend an rpg")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if answer != "Try Alpha Quest." {
		t.Errorf("answer = %q", answer)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("got %d completion calls, want 1", len(provider.requests))
	}
	msgs := provider.requests[0].Messages
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != llm.RoleSystem || !strings.HasPrefix(msgs[0].Content, "game : ") {
		t.Errorf("message 0 is not the context message: %+v", msgs[0])
	}
	if !strings.Contains(msgs[0].Content, "Alpha Quest") || !strings.Contains(msgs[0].Content, "Beta Blast") {
		t.Errorf("context message missing retrieved entries: %q", msgs[0].Content)
	}
	if msgs[1].Role != llm.RoleSystem || !strings.Contains(msgs[1].Content, "english") {
		t.Errorf("message 1 is not the persona message: %+v", msgs[1])
	}
	if msgs[2].Role != llm.RoleUser || msgs[2].Content != "recommend an rpg" {
		t.Errorf("message 2 is not the user turn: %+v", msgs[2])
	}
}

func TestHandleTurn_PriorTurnsIncluded(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{resultFor("10", "title: Alpha Quest")}}
	provider := &fakeProvider{replies: []string{"Alpha Quest.", "Then try Beta Blast."}}
	orch, hist := newTestOrchestrator(store, provider, Options{})

	ctx := context.Background()
	if _, err := orch.HandleTurn(ctx, "s1", "recommend an rpg"); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if _, err := orch.HandleTurn(ctx, "s1", "anything else?"); err != nil {
		t.Fatalf("second turn: %v", err)
	}

	msgs := provider.requests[1].Messages
	// prior pair + context + persona + new user turn
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5: %+v", len(msgs), msgs)
	}
	if msgs[0].Role != llm.RoleUser || msgs[0].Content != "recommend an rpg" {
		t.Errorf("prior user turn not replayed verbatim: %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[1].Content != "Alpha Quest." {
		t.Errorf("prior assistant turn not replayed verbatim: %+v", msgs[1])
	}

	turns, err := hist.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(turns) != 4 {
		t.Errorf("transcript has %d turns, want 4", len(turns))
	}
}

func TestHandleTurn_ProviderFailureLeavesTranscriptUntouched(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{resultFor("10", "title: Alpha Quest")}}
	provider := &fakeProvider{err: errors.New("upstream 500")}
	orch, hist := newTestOrchestrator(store, provider, Options{})

	_, err := orch.HandleTurn(context.Background(), "s1", "recommend an rpg")
	if !errors.Is(err, ErrGenerationUnavailable) {
		t.Fatalf("err = %v, want ErrGenerationUnavailable", err)
	}

	turns, _ := hist.Get(context.Background(), "s1")
	if len(turns) != 0 {
		t.Errorf("failed turn wrote %d turns to the transcript", len(turns))
	}
}

func TestHandleTurn_RetrievalFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("index offline")}
	provider := &fakeProvider{}
	orch, hist := newTestOrchestrator(store, provider, Options{})

	_, err := orch.HandleTurn(context.Background(), "s1", "recommend an rpg")
	if !errors.Is(err, ErrGenerationUnavailable) {
		t.Fatalf("err = %v, want ErrGenerationUnavailable", err)
	}
	if len(provider.requests) != 0 {
		t.Errorf("completion called despite retrieval failure")
	}
	turns, _ := hist.Get(context.Background(), "s1")
	if len(turns) != 0 {
		t.Errorf("failed turn wrote %d turns to the transcript", len(turns))
	}
}

func TestHandleTurn_EmptyRetrievalIsNotAnError(t *testing.T) {
	store := &fakeStore{}
	provider := &fakeProvider{replies: []string{"Nothing in the catalog matches."}}
	orch, _ := newTestOrchestrator(store, provider, Options{})

	answer, err := orch.HandleTurn(context.Background(), "s1", "recommend a flight sim")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if answer == "" {
		t.Error("empty answer")
	}
	if got := provider.requests[0].Messages[0].Content; got != "game : " {
		t.Errorf("context message = %q, want empty context", got)
	}
}

func TestHandleTurn_TranslatesQueryBeforeRetrieval(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{resultFor("10", "title: Alpha Quest")}}
	provider := &fakeProvider{replies: []string{"recommend an RPG", "Alpha Quest."}}
	orch, _ := newTestOrchestrator(store, provider, Options{TranslateQueries: true})

	answer, err := orch.HandleTurn(context.Background(), "s1", "RPG 추천해줘")
	if err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if answer != "Alpha Quest." {
		t.Errorf("answer = %q", answer)
	}

	if len(provider.requests) != 2 {
		t.Fatalf("got %d completion calls, want translation + answer", len(provider.requests))
	}
	translate := provider.requests[0].Messages
	if translate[0].Role != llm.RoleSystem || !strings.Contains(translate[0].Content, "Translate") {
		t.Errorf("first call is not the translation prompt: %+v", translate[0])
	}
	if len(store.queries) != 1 || store.queries[0] != "recommend an RPG" {
		t.Errorf("retrieval query = %v, want translated text", store.queries)
	}
	// The answer prompt still carries the original user input.
	final := provider.requests[1].Messages
	if final[len(final)-1].Content != "RPG 추천해줘" {
		t.Errorf("final user message = %q, want original input", final[len(final)-1].Content)
	}
}

func TestHandleTurn_EmptyTranslationFallsBackToInput(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{resultFor("10", "title: Alpha Quest")}}
	provider := &fakeProvider{replies: []string{"   ", "Alpha Quest."}}
	orch, _ := newTestOrchestrator(store, provider, Options{TranslateQueries: true})

	if _, err := orch.HandleTurn(context.Background(), "s1", "best rpg?"); err != nil {
		t.Fatalf("HandleTurn: %v", err)
	}
	if len(store.queries) != 1 || store.queries[0] != "best rpg?" {
		t.Errorf("retrieval query = %v, want original input", store.queries)
	}
}

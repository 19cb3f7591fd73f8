package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// vocabEmbedder maps known words onto fixed vector positions so tests get
// fully deterministic similarities.
type vocabEmbedder struct {
	vocab []string
}

func newVocabEmbedder() *vocabEmbedder {
	return &vocabEmbedder{vocab: []string{"fantasy", "rpg", "space", "shooter"}}
}

func (m *vocabEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(m.vocab)+1)
		vec[len(m.vocab)] = 0.1
		for _, tok := range strings.Fields(strings.ToLower(text)) {
			tok = strings.Trim(tok, ".,:|")
			for j, w := range m.vocab {
				if tok == w {
					vec[j] += 1.0
				}
			}
		}
		results[i] = vec
	}
	return results, nil
}

func (m *vocabEmbedder) Dimensions() int { return len(m.vocab) + 1 }
func (m *vocabEmbedder) Name() string    { return "vocab" }

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	content := strings.Join([]string{
		"appid,title,genres,description",
		"1,Alpha,RPG,fantasy",
		"2,Beta,Shooter,space",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestStore(t *testing.T) *vectordb.ChromemStore {
	t.Helper()
	store, err := vectordb.NewChromemStore(newVocabEmbedder())
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	return store
}

func TestInitializer_BuildsEmptyIndex(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	path := writeCatalog(t)

	var batches []int
	init := New(store, path, 1)
	init.SetProgressFunc(func(batch, total, docs int) {
		batches = append(batches, total)
	})

	result, err := init.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.State != StateReady {
		t.Errorf("state = %s, want %s", result.State, StateReady)
	}
	if !result.Built {
		t.Error("expected a build run")
	}
	if result.Documents != 2 {
		t.Errorf("indexed %d documents, want 2", result.Documents)
	}
	if len(batches) != 2 || batches[0] != 2 {
		t.Errorf("progress calls = %v, want two calls with total 2", batches)
	}
	if store.Count() != 2 {
		t.Errorf("store holds %d documents, want 2", store.Count())
	}

	// The built index answers similarity queries.
	results, err := store.Search(ctx, "space combat", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "2" {
		t.Errorf("search returned %+v, want document 2", results)
	}
}

func TestInitializer_LoadedPathSkipsCatalog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	path := writeCatalog(t)

	first, err := New(store, path, 1).Run(ctx)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if !first.Built {
		t.Fatal("first run should build")
	}

	// Second initializer over the same store: the catalog path is bogus, so
	// any attempt to reload it would fail. The non-empty probe must short
	// circuit instead.
	second, err := New(store, "does-not-exist.csv", 1).Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.State != StateReady {
		t.Errorf("state = %s, want %s", second.State, StateReady)
	}
	if second.Built {
		t.Error("second run must take the loaded path, not rebuild")
	}
	if store.Count() != 2 {
		t.Errorf("store grew to %d documents on reload", store.Count())
	}
}

func TestInitializer_RunOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	path := writeCatalog(t)

	init := New(store, path, 10)
	first, err := init.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	second, err := init.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second != first {
		t.Error("repeated Run must return the first result")
	}
	if store.Count() != 2 {
		t.Errorf("store holds %d documents after double run, want 2", store.Count())
	}
}

func TestInitializer_FatalWhenCatalogUnreadable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	result, err := New(store, "does-not-exist.csv", 10).Run(ctx)
	if err == nil {
		t.Fatal("expected error for unreadable catalog")
	}
	if result.State != StateFailed {
		t.Errorf("state = %s, want %s", result.State, StateFailed)
	}
}

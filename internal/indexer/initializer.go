// Package indexer bootstraps the vector index from the game catalog.
package indexer

import (
	"context"
	"fmt"
	"sync"

	"github.com/gamemate-ai/gamemate/internal/catalog"
	"github.com/gamemate-ai/gamemate/internal/vectordb"
)

// State tracks the bootstrap procedure's progress.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoaded        State = "loaded"
	StateEmptyDetected State = "empty_detected"
	StateBuilding      State = "building"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// ProgressFunc is called after each batch is committed during a build.
type ProgressFunc func(batch, totalBatches, docs int)

// Result describes how the index reached readiness.
type Result struct {
	State       State // StateReady on success, StateFailed otherwise
	Built       bool  // true if the catalog was loaded and indexed this run
	Documents   int   // documents committed during a build
	SkippedRows []catalog.RowError
}

// Initializer loads-or-builds the vector index exactly once. A non-empty
// index is used as-is; an empty one is built from the catalog, batch by
// batch. The emptiness probe is the de-duplication mechanism across
// processes: index construction is administratively triggered and rare, not
// a hot path.
type Initializer struct {
	store       vectordb.VectorStore
	catalogPath string
	batchSize   int
	onProgress  ProgressFunc

	once   sync.Once
	result *Result
	err    error
}

// New creates an Initializer for the given store and catalog file.
func New(store vectordb.VectorStore, catalogPath string, batchSize int) *Initializer {
	return &Initializer{
		store:       store,
		catalogPath: catalogPath,
		batchSize:   batchSize,
	}
}

// SetProgressFunc sets the progress callback invoked during builds.
func (in *Initializer) SetProgressFunc(fn ProgressFunc) {
	in.onProgress = fn
}

// Run performs the bootstrap. Repeated calls return the first run's outcome;
// the procedure never executes twice within one process.
func (in *Initializer) Run(ctx context.Context) (*Result, error) {
	in.once.Do(func() {
		in.result, in.err = in.run(ctx)
	})
	return in.result, in.err
}

func (in *Initializer) run(ctx context.Context) (*Result, error) {
	res := &Result{State: StateUninitialized}

	// LOADED path: a non-empty index is reused as-is, the catalog is never read.
	if !in.store.IsEmpty() {
		res.State = StateReady
		return res, nil
	}

	res.State = StateEmptyDetected

	loaded, err := catalog.LoadBatches(in.catalogPath, in.batchSize)
	if err != nil {
		res.State = StateFailed
		return res, fmt.Errorf("loading catalog: %w", err)
	}
	res.SkippedRows = loaded.Skipped

	res.State = StateBuilding
	for i, batch := range loaded.Batches {
		if err := ctx.Err(); err != nil {
			res.State = StateFailed
			return res, err
		}
		if err := in.store.AddDocuments(ctx, batch); err != nil {
			res.State = StateFailed
			return res, fmt.Errorf("indexing batch %d/%d: %w", i+1, len(loaded.Batches), err)
		}
		res.Documents += len(batch)
		if in.onProgress != nil {
			in.onProgress(i+1, len(loaded.Batches), res.Documents)
		}
	}

	res.Built = true
	res.State = StateReady
	return res, nil
}

// Package vectorstore is the contract boundary to the external
// similarity-search index, backed by a persisted chromem-go collection.
// Embedding computation and nearest-neighbor search belong to chromem;
// this package only decides what gets stored and how results come back.
package vectorstore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog"

	"github.com/gato25/odoo-rag/internal/models"
)

type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     zerolog.Logger
}

// New opens (or creates) a persisted store. The embedding function is
// fixed at store-creation time; reopening an existing persist directory
// with a different embedding model is undefined and not guarded here.
func New(persistDir, collectionName string, embed chromem.EmbeddingFunc, logger zerolog.Logger) (*Store, error) {
	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", persistDir, err)
	}
	return newStore(db, collectionName, embed, logger)
}

// NewInMemory creates a non-persisted store, used by tests.
func NewInMemory(collectionName string, embed chromem.EmbeddingFunc, logger zerolog.Logger) (*Store, error) {
	return newStore(chromem.NewDB(), collectionName, embed, logger)
}

func newStore(db *chromem.DB, collectionName string, embed chromem.EmbeddingFunc, logger zerolog.Logger) (*Store, error) {
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", collectionName, err)
	}
	return &Store{db: db, collection: collection, logger: logger}, nil
}

// Add stores chunks in one batch. Identifiers are scoped monotonically
// to the current store size. Empty input is a logged no-op.
func (s *Store) Add(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		s.logger.Warn().Msg("no chunks to add")
		return nil
	}

	base := s.collection.Count()
	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:       fmt.Sprintf("chunk_%d", base+i),
			Content:  chunk.Content,
			Metadata: chunk.Metadata,
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding %d chunks: %w", len(chunks), err)
	}
	s.logger.Info().Int("chunks", len(chunks)).Msg("added chunks to vector store")
	return nil
}

// Search returns up to k nearest chunks ordered by ascending distance.
// Filter keys are matched by exact equality, conjunctively. An empty
// store or an empty match set yields an empty slice, not an error.
func (s *Store) Search(ctx context.Context, query string, filter map[string]string, k int) ([]models.Document, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	// chromem rejects result counts above the collection size.
	if k > count {
		k = count
	}

	results, err := s.collection.Query(ctx, query, k, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	docs := make([]models.Document, len(results))
	for i, r := range results {
		docs[i] = models.Document{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
			Distance: 1 - r.Similarity,
		}
	}
	return docs, nil
}

// SearchByModule restricts the search to one module.
func (s *Store) SearchByModule(ctx context.Context, query, moduleName string, k int) ([]models.Document, error) {
	return s.Search(ctx, query, map[string]string{models.MetaModule: moduleName}, k)
}

// SearchByType restricts the search to one entity type (manifest, model,
// view or a file kind).
func (s *Store) SearchByType(ctx context.Context, query, entityType string, k int) ([]models.Document, error) {
	return s.Search(ctx, query, map[string]string{models.MetaType: entityType}, k)
}

// SearchByModel looks for content about a technical model name: exact
// matches on the model-name field first, then, when fewer than k came
// back, views referencing the model by name appended after them. The two
// filters are mutually exclusive by entity type, so no deduplication is
// attempted.
func (s *Store) SearchByModel(ctx context.Context, query, modelName string, k int) ([]models.Document, error) {
	exact, err := s.Search(ctx, query, map[string]string{models.MetaModelName: modelName}, k)
	if err != nil {
		return nil, err
	}
	if len(exact) >= k {
		return exact, nil
	}

	views, err := s.Search(ctx, query, map[string]string{
		models.MetaType:      models.TypeView,
		models.MetaViewModel: modelName,
	}, k-len(exact))
	if err != nil {
		return nil, err
	}
	return append(exact, views...), nil
}

// Stats returns the total number of stored chunks.
func (s *Store) Stats() int {
	return s.collection.Count()
}

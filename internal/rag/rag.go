// Package rag turns a free-text question into a context-grounded
// generation request and a structured answer with provenance. It holds
// no session state: select template, assemble context, one generation
// call, return.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gato25/odoo-rag/internal/config"
	"github.com/gato25/odoo-rag/internal/models"
)

// Retriever is the slice of the vector store gateway the engine needs.
type Retriever interface {
	Search(ctx context.Context, query string, filter map[string]string, k int) ([]models.Document, error)
	SearchByModule(ctx context.Context, query, moduleName string, k int) ([]models.Document, error)
	SearchByModel(ctx context.Context, query, modelName string, k int) ([]models.Document, error)
	SearchByType(ctx context.Context, query, entityType string, k int) ([]models.Document, error)
}

// Generator is the single-turn completion boundary.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

const (
	// listAllK approximates "every manifest" for module listing; exact
	// enumeration would need the indexer's module map at query time.
	listAllK = 200
	diagramK = 10

	noDocumentsSentinel = "No relevant documents found."
)

type Engine struct {
	store       Retriever
	llm         Generator
	temperature float64
	maxTokens   int
	topK        int
	logger      zerolog.Logger
}

func NewEngine(store Retriever, llm Generator, cfg *config.Config, logger zerolog.Logger) *Engine {
	return &Engine{
		store:       store,
		llm:         llm,
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
		topK:        cfg.RAG.TopK,
		logger:      logger,
	}
}

// AnswerQuestion retrieves the nearest chunks and answers with the
// template selected from the question's intent.
func (e *Engine) AnswerQuestion(ctx context.Context, question string) (*models.Answer, error) {
	docs, err := e.store.Search(ctx, question, nil, e.topK)
	if err != nil {
		return nil, err
	}
	return e.compose(ctx, selectTemplate(question), question, docs)
}

// AnswerAboutModule scopes retrieval to one module.
func (e *Engine) AnswerAboutModule(ctx context.Context, question, moduleName string) (*models.Answer, error) {
	docs, err := e.store.SearchByModule(ctx, question, moduleName, e.topK)
	if err != nil {
		return nil, err
	}
	return e.compose(ctx, selectTemplate(question), question, docs)
}

// AnswerAboutModel scopes retrieval to a technical model name, using the
// exact-then-views search and always the model template.
func (e *Engine) AnswerAboutModel(ctx context.Context, question, modelName string) (*models.Answer, error) {
	docs, err := e.store.SearchByModel(ctx, question, modelName, e.topK)
	if err != nil {
		return nil, err
	}
	return e.compose(ctx, modelTemplate, question, docs)
}

// ListAllModules retrieves manifest chunks with an artificially large k
// and relies on generation to deduplicate and format. An approximation,
// not an exact enumeration.
func (e *Engine) ListAllModules(ctx context.Context) (*models.Answer, error) {
	docs, err := e.store.SearchByType(ctx, "odoo module manifest", models.TypeManifest, listAllK)
	if err != nil {
		return nil, err
	}
	return e.compose(ctx, moduleListTemplate, "List all available modules.", docs)
}

// GenerateSequenceDiagram builds a synthetic retrieval query from fixed
// keywords plus the process name, optionally scoped to one module, and
// forces the diagram template regardless of keyword routing.
func (e *Engine) GenerateSequenceDiagram(ctx context.Context, processName, moduleName string) (*models.Answer, error) {
	query := "sequence diagram workflow process steps " + processName

	var filter map[string]string
	if moduleName != "" {
		filter = map[string]string{models.MetaModule: moduleName}
	}
	docs, err := e.store.Search(ctx, query, filter, diagramK)
	if err != nil {
		return nil, err
	}
	return e.compose(ctx, diagramTemplate, processName, docs)
}

// compose issues exactly one generation call and wraps the result with
// its source documents.
func (e *Engine) compose(ctx context.Context, tmpl *promptTemplate, question string, docs []models.Document) (*models.Answer, error) {
	prompt := fmt.Sprintf(tmpl.text, formatContext(docs), question)
	maxTokens := e.maxTokens * tmpl.tokenFactor

	e.logger.Debug().
		Str("template", tmpl.name).
		Int("documents", len(docs)).
		Int("max_tokens", maxTokens).
		Msg("generating answer")

	result, err := e.llm.Generate(ctx, prompt, maxTokens, e.temperature)
	if err != nil {
		return nil, err
	}
	return &models.Answer{Result: result, Sources: docs}, nil
}

// selectTemplate routes by keyword scan over the lowercased question,
// first match wins; no match falls back to the generic template.
func selectTemplate(question string) *promptTemplate {
	lower := strings.ToLower(question)
	for _, r := range routes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tmpl
			}
		}
	}
	return defaultTemplate
}

// formatContext renders retrieved documents into labeled blocks in
// retrieval order. An empty set renders the sentinel string so the
// generation prompt is always well-formed.
func formatContext(docs []models.Document) string {
	if len(docs) == 0 {
		return noDocumentsSentinel
	}

	parts := make([]string, len(docs))
	for i, doc := range docs {
		parts[i] = fmt.Sprintf("[Document %d] Module: %s, Path: %s, Type: %s\n%s\n",
			i+1,
			metaOr(doc.Metadata, models.MetaModule, "unknown"),
			metaOr(doc.Metadata, models.MetaFilePath, "unknown"),
			metaOr(doc.Metadata, models.MetaType, "unknown"),
			doc.Content,
		)
	}
	return strings.Join(parts, "\n")
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}

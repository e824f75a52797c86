package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gato25/odoo-rag/internal/config"
	"github.com/gato25/odoo-rag/internal/models"
)

// fakeRetriever records the last call and serves canned documents.
type fakeRetriever struct {
	docs []models.Document

	lastQuery  string
	lastFilter map[string]string
	lastModule string
	lastModel  string
	lastType   string
	lastK      int
}

func (f *fakeRetriever) Search(_ context.Context, query string, filter map[string]string, k int) ([]models.Document, error) {
	f.lastQuery, f.lastFilter, f.lastK = query, filter, k
	return f.docs, nil
}

func (f *fakeRetriever) SearchByModule(_ context.Context, query, moduleName string, k int) ([]models.Document, error) {
	f.lastQuery, f.lastModule, f.lastK = query, moduleName, k
	return f.docs, nil
}

func (f *fakeRetriever) SearchByModel(_ context.Context, query, modelName string, k int) ([]models.Document, error) {
	f.lastQuery, f.lastModel, f.lastK = query, modelName, k
	return f.docs, nil
}

func (f *fakeRetriever) SearchByType(_ context.Context, query, entityType string, k int) ([]models.Document, error) {
	f.lastQuery, f.lastType, f.lastK = query, entityType, k
	return f.docs, nil
}

// fakeGenerator echoes a fixed result and records the prompt it saw.
type fakeGenerator struct {
	result string

	lastPrompt      string
	lastMaxTokens   int
	lastTemperature float64
	calls           int
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	f.lastPrompt, f.lastMaxTokens, f.lastTemperature = prompt, maxTokens, temperature
	f.calls++
	return f.result, nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.LLM.MaxTokens = 1000
	cfg.LLM.Temperature = 0.2
	cfg.RAG.TopK = 5
	return cfg
}

func newTestEngine(store *fakeRetriever, llm *fakeGenerator) *Engine {
	return NewEngine(store, llm, testConfig(), zerolog.Nop())
}

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What fields does res.partner have?", "model"},
		{"How does view inheritance work?", "view"},
		{"Show me a sequence diagram for order checkout", "diagram"},
		// Diagram keywords outrank model keywords.
		{"sequence diagram of the field update workflow", "diagram"},
		{"List all modules", "modules"},
		{"Which modules are installed?", "modules"},
		{"Tell me about this codebase", "default"},
		{"SHOW THE ORM LAYER", "model"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, selectTemplate(tc.question).name, tc.question)
	}
}

func TestAnswerQuestion(t *testing.T) {
	store := &fakeRetriever{docs: []models.Document{
		{ID: "chunk_0", Content: "partner fields", Metadata: map[string]string{
			models.MetaModule:   "base",
			models.MetaFilePath: "models/partner.py",
			models.MetaType:     models.TypeModel,
		}},
	}}
	llm := &fakeGenerator{result: "the answer"}
	e := newTestEngine(store, llm)

	answer, err := e.AnswerQuestion(context.Background(), "What fields does res.partner have?")
	require.NoError(t, err)

	assert.Equal(t, "the answer", answer.Result)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "chunk_0", answer.Sources[0].ID)

	assert.Equal(t, 5, store.lastK)
	assert.Nil(t, store.lastFilter)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, 1000, llm.lastMaxTokens)
	assert.InDelta(t, 0.2, llm.lastTemperature, 1e-9)

	assert.Contains(t, llm.lastPrompt, "Odoo models and fields", "model template must be routed")
	assert.Contains(t, llm.lastPrompt, "[Document 1] Module: base, Path: models/partner.py, Type: model")
	assert.Contains(t, llm.lastPrompt, "partner fields")
	assert.Contains(t, llm.lastPrompt, "Question: What fields does res.partner have?")
}

func TestAnswerQuestionNoDocuments(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "I don't know."}
	e := newTestEngine(store, llm)

	answer, err := e.AnswerQuestion(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Empty(t, answer.Sources)
	assert.Contains(t, llm.lastPrompt, "No relevant documents found.")
}

func TestAnswerAboutModule(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "ok"}
	e := newTestEngine(store, llm)

	_, err := e.AnswerAboutModule(context.Background(), "what does it do", "sale_ext")
	require.NoError(t, err)
	assert.Equal(t, "sale_ext", store.lastModule)
	assert.Equal(t, 5, store.lastK)
}

func TestAnswerAboutModelForcesModelTemplate(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "ok"}
	e := newTestEngine(store, llm)

	// The question carries view keywords, but the model scope wins.
	_, err := e.AnswerAboutModel(context.Background(), "which form views use it", "res.partner")
	require.NoError(t, err)
	assert.Equal(t, "res.partner", store.lastModel)
	assert.Contains(t, llm.lastPrompt, "Odoo models and fields")
}

func TestListAllModules(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "base - Base (1.0)"}
	e := newTestEngine(store, llm)

	answer, err := e.ListAllModules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "base - Base (1.0)", answer.Result)
	assert.Equal(t, models.TypeManifest, store.lastType)
	assert.Equal(t, 200, store.lastK)
	assert.Contains(t, llm.lastPrompt, "List every distinct module")
}

func TestGenerateSequenceDiagram(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "```mermaid\nsequenceDiagram\n```"}
	e := newTestEngine(store, llm)

	answer, err := e.GenerateSequenceDiagram(context.Background(), "order checkout", "sale_ext")
	require.NoError(t, err)
	assert.Equal(t, llm.result, answer.Result)

	assert.Contains(t, store.lastQuery, "order checkout")
	assert.Contains(t, store.lastQuery, "sequence diagram")
	assert.Equal(t, map[string]string{models.MetaModule: "sale_ext"}, store.lastFilter)
	assert.Equal(t, 10, store.lastK)

	// Diagram responses get double the token ceiling.
	assert.Equal(t, 2000, llm.lastMaxTokens)
	assert.Contains(t, llm.lastPrompt, "mermaid sequence diagram")
	assert.Contains(t, llm.lastPrompt, "Process: order checkout")
}

func TestGenerateSequenceDiagramNoModuleFilter(t *testing.T) {
	store := &fakeRetriever{}
	llm := &fakeGenerator{result: "ok"}
	e := newTestEngine(store, llm)

	_, err := e.GenerateSequenceDiagram(context.Background(), "invoicing", "")
	require.NoError(t, err)
	assert.Nil(t, store.lastFilter)
}

func TestFormatContext(t *testing.T) {
	docs := []models.Document{
		{Content: "first", Metadata: map[string]string{
			models.MetaModule:   "m1",
			models.MetaFilePath: "a.py",
			models.MetaType:     models.TypeModel,
		}},
		{Content: "second", Metadata: map[string]string{}},
	}
	out := formatContext(docs)

	assert.True(t, strings.HasPrefix(out, "[Document 1] Module: m1, Path: a.py, Type: model\nfirst\n"))
	assert.Contains(t, out, "[Document 2] Module: unknown, Path: unknown, Type: unknown\nsecond\n")
}

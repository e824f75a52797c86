package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultChunkSize    = 2000
	defaultChunkOverlap = 400
	defaultTopK         = 5
	defaultCollection   = "odoo_code"
	defaultPersistDir   = "chroma_db"
	defaultLLMModel     = "claude-3-5-haiku-20241022"
	defaultMaxTokens    = 1000
	defaultEmbedder     = "ollama"
	defaultEmbedModel   = "nomic-embed-text"
	defaultEmbedBaseURL = "http://localhost:11434"
)

type StoreConfig struct {
	PersistDir string `yaml:"persist_dir"`
	Collection string `yaml:"collection"`
}

// EmbeddingConfig selects the embedding backend. The model is fixed at
// store-creation time; reopening a persisted store with a different
// embedding model mixes incompatible vectors and is undefined.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

type LLMConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	TopK         int `yaml:"top_k"`
}

type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	RAG       RAGConfig       `yaml:"rag"`
}

// Default returns a config with all defaults filled in.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			PersistDir: defaultPersistDir,
			Collection: defaultCollection,
		},
		Embedding: EmbeddingConfig{
			Provider: defaultEmbedder,
			BaseURL:  defaultEmbedBaseURL,
			Model:    defaultEmbedModel,
		},
		LLM: LLMConfig{
			Model:     defaultLLMModel,
			MaxTokens: defaultMaxTokens,
		},
		RAG: RAGConfig{
			ChunkSize:    defaultChunkSize,
			ChunkOverlap: defaultChunkOverlap,
			TopK:         defaultTopK,
		},
	}
}

// Load reads a yaml config file on top of the defaults. A missing file
// is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Store.PersistDir == "" {
		c.Store.PersistDir = d.Store.PersistDir
	}
	if c.Store.Collection == "" {
		c.Store.Collection = d.Store.Collection
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = d.Embedding.Provider
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = d.Embedding.BaseURL
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = d.Embedding.Model
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = d.LLM.MaxTokens
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = d.RAG.ChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = d.RAG.ChunkOverlap
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = d.RAG.TopK
	}
}

// Validate rejects chunking parameters the splitter cannot honor. The
// overlap must stay below the chunk size or the window would never
// advance.
func (c *Config) Validate() error {
	if c.RAG.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.RAG.ChunkSize)
	}
	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("chunk_overlap must be in [0, chunk_size), got %d with chunk_size %d",
			c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}
	if c.RAG.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.RAG.TopK)
	}
	return nil
}

// Package cli wires the index, query, diagram and interactive
// subcommands around the indexing pipeline and the RAG engine.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gato25/odoo-rag/internal/config"
	"github.com/gato25/odoo-rag/internal/embedding"
	"github.com/gato25/odoo-rag/internal/llm"
	"github.com/gato25/odoo-rag/internal/models"
	"github.com/gato25/odoo-rag/internal/rag"
	"github.com/gato25/odoo-rag/internal/vectorstore"
)

const apiKeyEnv = "ANTHROPIC_API_KEY"

var (
	cfgPath    string
	persistDir string
	verbose    bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "odoo-rag",
	Short: "Index Odoo modules and answer questions about them",
	Long: `odoo-rag indexes a tree of Odoo addon modules into a persisted
vector store and answers natural-language developer questions by
retrieving relevant code fragments and sending them to Claude.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&persistDir, "persist-dir", "", "directory where the vector store is persisted")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if persistDir != "" {
		cfg.Store.PersistDir = persistDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openExistingStore opens a persisted store, requiring that an indexing
// pass already created it. A missing store is a user-facing message, not
// a crash.
func openExistingStore(cfg *config.Config) (*vectorstore.Store, bool, error) {
	if _, err := os.Stat(cfg.Store.PersistDir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Vector store not found at %s. Please run 'odoo-rag index' first.\n", cfg.Store.PersistDir)
		return nil, false, nil
	}

	embed, err := embedding.NewEmbeddingFunc(&cfg.Embedding)
	if err != nil {
		return nil, false, err
	}
	store, err := vectorstore.New(cfg.Store.PersistDir, cfg.Store.Collection, embed, logger)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// newEngine assembles the RAG engine, requiring the API credential from
// the environment. Missing credential is a user-facing message.
func newEngine(cfg *config.Config, store *vectorstore.Store) (*rag.Engine, bool, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "%s environment variable not set. Please set it before querying.\n", apiKeyEnv)
		return nil, false, nil
	}

	client, err := llm.New(apiKey, cfg.LLM.Model)
	if err != nil {
		return nil, false, err
	}
	return rag.NewEngine(store, client, cfg, logger), true, nil
}

// printSources lists the top source documents of an answer.
func printSources(docs []models.Document, limit int) {
	if len(docs) == 0 {
		return
	}
	if limit > len(docs) {
		limit = len(docs)
	}
	fmt.Println("\nSources:")
	for i := 0; i < limit; i++ {
		source := metaOr(docs[i].Metadata, models.MetaFilePath, "Unknown")
		docType := metaOr(docs[i].Metadata, models.MetaType, "Unknown")
		fmt.Printf("%d. %s (%s)\n", i+1, source, docType)
	}
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v, ok := meta[key]; ok && v != "" {
		return v
	}
	return fallback
}

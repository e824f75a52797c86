package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gato25/odoo-rag/internal/embedding"
	"github.com/gato25/odoo-rag/internal/indexer"
	"github.com/gato25/odoo-rag/internal/vectorstore"
)

var indexModulesPath string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index Odoo modules into the vector store",
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexModulesPath, "modules-path", "", "path to the Odoo modules directory")
	_ = indexCmd.MarkFlagRequired("modules-path")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info().Str("modules_path", indexModulesPath).Msg("indexing modules")

	ix := indexer.New(indexModulesPath, logger)
	modules, err := ix.IndexAll()
	if err != nil {
		return fmt.Errorf("indexing modules: %w", err)
	}
	logger.Info().Int("modules", len(modules)).Msg("indexed modules")

	chunks := ix.ToChunks(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)

	embed, err := embedding.NewEmbeddingFunc(&cfg.Embedding)
	if err != nil {
		return err
	}
	store, err := vectorstore.New(cfg.Store.PersistDir, cfg.Store.Collection, embed, logger)
	if err != nil {
		return err
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		return err
	}

	fmt.Printf("Indexed %d modules (%d chunks) into %s\n", len(modules), len(chunks), cfg.Store.PersistDir)
	return nil
}

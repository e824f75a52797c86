// Package indexer discovers Odoo modules under a root directory, runs
// the entity extractor across their files and assembles metadata-tagged
// chunks for the vector store.
package indexer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gato25/odoo-rag/internal/chunker"
	"github.com/gato25/odoo-rag/internal/extractor"
	"github.com/gato25/odoo-rag/internal/models"
)

type Indexer struct {
	root      string
	extractor *extractor.Extractor
	modules   map[string]*models.Package
	logger    zerolog.Logger
}

func New(root string, logger zerolog.Logger) *Indexer {
	return &Indexer{
		root:      root,
		extractor: extractor.New(logger),
		modules:   make(map[string]*models.Package),
		logger:    logger,
	}
}

// Discover lists the modules directly under the root: a directory is a
// module iff it contains __manifest__.py. Ordering follows the directory
// listing and carries no guarantee.
func (ix *Indexer) Discover() ([]string, error) {
	entries, err := os.ReadDir(ix.root)
	if err != nil {
		return nil, fmt.Errorf("reading modules root %s: %w", ix.root, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		marker := filepath.Join(ix.root, entry.Name(), extractor.ManifestFile)
		if _, err := os.Stat(marker); err == nil {
			names = append(names, entry.Name())
		}
	}
	ix.logger.Info().Int("count", len(names)).Msg("discovered modules")
	return names, nil
}

// IndexModule walks one module's subtree, extracting entities from every
// file. Re-indexing a module overwrites its prior entry.
func (ix *Indexer) IndexModule(name string) (*models.Package, error) {
	modulePath := filepath.Join(ix.root, name)
	pkg := &models.Package{
		Name:     name,
		Path:     modulePath,
		Manifest: extractor.ParseManifest(modulePath, name),
	}

	err := filepath.WalkDir(modulePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".pyc") {
			return nil
		}
		// The manifest is its own entity and always chunked separately.
		if base == extractor.ManifestFile {
			return nil
		}
		kind := extractor.KindFromExt(path)
		pkg.Entities = append(pkg.Entities, ix.extractor.Extract(path, name, kind)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking module %s: %w", name, err)
	}

	ix.logger.Info().Str("module", name).Int("entities", len(pkg.Entities)).Msg("indexed module")
	ix.modules[name] = pkg
	return pkg, nil
}

// IndexAll indexes every discovered module, accumulating onto whatever
// has been indexed before.
func (ix *Indexer) IndexAll() (map[string]*models.Package, error) {
	names, err := ix.Discover()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, err := ix.IndexModule(name); err != nil {
			return nil, err
		}
	}
	return ix.modules, nil
}

// Modules returns the accumulated package map. The map is owned by the
// indexer and must not be mutated by concurrent callers.
func (ix *Indexer) Modules() map[string]*models.Package {
	return ix.modules
}

// ToChunks renders every indexed package into retrieval chunks. Each
// module always contributes its manifest chunk, even when manifest
// parsing failed; entities whose rendering exceeds chunkSize are split
// into overlapping windows tagged with their position in the split.
func (ix *Indexer) ToChunks(chunkSize, overlap int) []models.Chunk {
	var chunks []models.Chunk

	for name, pkg := range ix.modules {
		chunks = append(chunks, models.Chunk{
			Content: renderManifest(&pkg.Manifest),
			Metadata: map[string]string{
				models.MetaModule:   name,
				models.MetaType:     models.TypeManifest,
				models.MetaFilePath: pkg.Manifest.FilePath,
			},
		})

		for _, entity := range pkg.Entities {
			chunks = append(chunks, entityChunks(entity, chunkSize, overlap)...)
		}
	}

	ix.logger.Info().Int("chunks", len(chunks)).Msg("generated chunks for embedding")
	return chunks
}

func entityChunks(entity models.Entity, chunkSize, overlap int) []models.Chunk {
	text := Render(entity)
	meta := entityMetadata(entity)

	parts := chunker.Split(text, chunkSize, overlap)
	if len(parts) == 1 {
		return []models.Chunk{{Content: text, Metadata: meta}}
	}

	chunks := make([]models.Chunk, len(parts))
	for i, part := range parts {
		m := make(map[string]string, len(meta)+2)
		for k, v := range meta {
			m[k] = v
		}
		m[models.MetaChunkIndex] = strconv.Itoa(i)
		m[models.MetaTotalChunks] = strconv.Itoa(len(parts))
		chunks[i] = models.Chunk{Content: part, Metadata: m}
	}
	return chunks
}

func entityMetadata(entity models.Entity) map[string]string {
	meta := map[string]string{
		models.MetaModule:   entity.ModuleName(),
		models.MetaType:     entity.EntityType(),
		models.MetaFilePath: entity.SourcePath(),
	}
	switch e := entity.(type) {
	case *models.ModelDef:
		if e.TechnicalName != "" {
			meta[models.MetaModelName] = e.TechnicalName
		}
	case *models.ViewDef:
		if e.Model != "" {
			meta[models.MetaViewModel] = e.Model
		}
	}
	return meta
}

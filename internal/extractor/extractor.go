// Package extractor turns one source file into zero or more structured
// entity records. Extraction never fails: malformed input degrades to a
// plain-file record carrying an error marker, so an indexing pass is
// never aborted by one bad file.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gato25/odoo-rag/internal/models"
)

type Extractor struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// KindFromExt maps a file suffix to its file kind tag. Unknown suffixes
// map to "other".
func KindFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return models.KindPython
	case ".xml":
		return models.KindXML
	case ".js":
		return models.KindJavaScript
	case ".css":
		return models.KindCSS
	case ".scss":
		return models.KindSCSS
	case ".csv":
		return models.KindCSV
	default:
		return models.KindOther
	}
}

// Extract parses one file into entity records. Python files yield model
// definitions, XML files yield view definitions; files that produce no
// structured records, and files that fail to read or parse, yield a
// single plain-file record.
func (e *Extractor) Extract(path, module, kind string) []models.Entity {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Error().Err(err).Str("file", path).Msg("reading file")
		return []models.Entity{errorFile(path, module, kind, err)}
	}

	// Undecodable bytes are replaced, never fatal.
	content := strings.ToValidUTF8(string(data), "�")

	switch kind {
	case models.KindPython:
		if defs := ParseModels(content, module, path); len(defs) > 0 {
			entities := make([]models.Entity, len(defs))
			for i, d := range defs {
				entities[i] = d
			}
			return entities
		}
	case models.KindXML:
		views, err := ParseViews(content, module, path)
		if err != nil {
			e.logger.Error().Err(err).Str("file", path).Msg("parsing view XML")
			return []models.Entity{errorFile(path, module, kind, err)}
		}
		if len(views) > 0 {
			entities := make([]models.Entity, len(views))
			for i, v := range views {
				entities[i] = v
			}
			return entities
		}
	}

	return []models.Entity{&models.PlainFile{
		Module:   module,
		FilePath: path,
		Kind:     kind,
		Content:  content,
		Size:     len(content),
	}}
}

func errorFile(path, module, kind string, err error) *models.PlainFile {
	content := fmt.Sprintf("Error: %v", err)
	return &models.PlainFile{
		Module:   module,
		FilePath: path,
		Kind:     kind,
		Content:  content,
		Size:     len(content),
	}
}

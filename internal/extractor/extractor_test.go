package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gato25/odoo-rag/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestKindFromExt(t *testing.T) {
	tests := map[string]string{
		"models/sale.py":     models.KindPython,
		"views/sale.xml":     models.KindXML,
		"static/src/app.js":  models.KindJavaScript,
		"static/style.css":   models.KindCSS,
		"static/style.scss":  models.KindSCSS,
		"data/partners.csv":  models.KindCSV,
		"README.rst":         models.KindOther,
		"security/rules.pot": models.KindOther,
	}
	for path, want := range tests {
		assert.Equal(t, want, KindFromExt(path), path)
	}
}

func TestExtractPythonWithoutModelsDegradesToPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "utils.py", "def helper():\n    return 42\n")

	e := New(zerolog.Nop())
	entities := e.Extract(path, "mod", models.KindPython)
	require.Len(t, entities, 1)

	file, ok := entities[0].(*models.PlainFile)
	require.True(t, ok)
	assert.Equal(t, models.KindPython, file.Kind)
	assert.Contains(t, file.Content, "def helper()")
	assert.Equal(t, "mod", file.ModuleName())
}

func TestExtractPythonModels(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sale.py", "class Sale(models.Model):\n    _name = 'sale.ext'\n")

	e := New(zerolog.Nop())
	entities := e.Extract(path, "mod", models.KindPython)
	require.Len(t, entities, 1)

	def, ok := entities[0].(*models.ModelDef)
	require.True(t, ok)
	assert.Equal(t, "sale.ext", def.TechnicalName)
	assert.Equal(t, models.TypeModel, def.EntityType())
}

func TestExtractMissingFileYieldsErrorMarker(t *testing.T) {
	e := New(zerolog.Nop())
	entities := e.Extract("/nonexistent/file.py", "mod", models.KindPython)
	require.Len(t, entities, 1)

	file, ok := entities[0].(*models.PlainFile)
	require.True(t, ok)
	assert.Contains(t, file.Content, "Error:")
	assert.Equal(t, models.KindPython, file.Kind)
	assert.Equal(t, "/nonexistent/file.py", file.SourcePath())
}

func TestExtractMalformedXMLYieldsErrorMarker(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.xml", "<odoo><record model=\"ir.ui.view\">")

	e := New(zerolog.Nop())
	entities := e.Extract(path, "mod", models.KindXML)
	require.Len(t, entities, 1)

	file, ok := entities[0].(*models.PlainFile)
	require.True(t, ok)
	assert.Contains(t, file.Content, "Error:")
}

func TestExtractOtherKindKeepsContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "id,name\n1,Partner\n")

	e := New(zerolog.Nop())
	entities := e.Extract(path, "mod", models.KindCSV)
	require.Len(t, entities, 1)

	file, ok := entities[0].(*models.PlainFile)
	require.True(t, ok)
	assert.Equal(t, "id,name\n1,Partner\n", file.Content)
	assert.Equal(t, len(file.Content), file.Size)
}

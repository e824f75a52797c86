package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644)
	require.NoError(t, err)
	return dir
}

func TestParseManifestStrict(t *testing.T) {
	dir := writeManifest(t, `# -*- coding: utf-8 -*-
{
    'name': 'Sale Extension',
    'version': '16.0.1.0.0',
    'description': """
        Extends the sale workflow
        with extra approval steps.
    """,
    'depends': ['sale', 'account'],
    'data': [
        'views/sale_order_views.xml',
    ],
    'installable': True,
    'application': False,
}
`)

	m := ParseManifest(dir, "sale_ext")
	assert.Empty(t, m.ParseError)
	assert.Equal(t, "sale_ext", m.Module)
	assert.Equal(t, "Sale Extension", m.DisplayName)
	assert.Equal(t, "16.0.1.0.0", m.Version)
	assert.Equal(t, []string{"sale", "account"}, m.Depends)
	assert.NotEmpty(t, m.RawContent)
}

func TestParseManifestFallbackOnBrokenSyntax(t *testing.T) {
	// Unclosed list defeats the literal parse; regex extraction still
	// recovers the basics.
	dir := writeManifest(t, `{
    'name': 'Broken Module',
    'version': '1.0',
    'depends': ['base', 'web'],
    'data': [
`)

	m := ParseManifest(dir, "broken")
	assert.NotEmpty(t, m.ParseError)
	assert.Equal(t, "Broken Module", m.DisplayName)
	assert.Equal(t, "1.0", m.Version)
	assert.Equal(t, []string{"base", "web"}, m.Depends)
}

func TestParseManifestMissingFile(t *testing.T) {
	m := ParseManifest(t.TempDir(), "ghost")
	assert.NotEmpty(t, m.ParseError)
	assert.Empty(t, m.RawContent)
	assert.Equal(t, "ghost", m.Module)
}

func TestParsePyDictNested(t *testing.T) {
	dict, err := parsePyDict(`{
    'name': 'X',
    'count': 3,
    'price': 1.5,
    'flags': {'a': True, 'b': None},
    'tags': ('one', 'two'),  # tuple literal
}`)
	require.NoError(t, err)
	assert.Equal(t, "X", dict["name"])
	assert.Equal(t, 3, dict["count"])
	assert.Equal(t, 1.5, dict["price"])
	assert.Equal(t, []any{"one", "two"}, dict["tags"])
	flags, ok := dict["flags"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, flags["a"])
	assert.Nil(t, flags["b"])
}

func TestParsePyDictRejectsNonLiteral(t *testing.T) {
	_, err := parsePyDict(`{'name': get_name()}`)
	assert.Error(t, err)
}

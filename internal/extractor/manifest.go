package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gato25/odoo-rag/internal/models"
)

// ManifestFile marks a directory as an Odoo module.
const ManifestFile = "__manifest__.py"

var (
	manifestNameRe    = regexp.MustCompile(`['"]name['"]\s*:\s*['"]([^'"]+)['"]`)
	manifestVersionRe = regexp.MustCompile(`['"]version['"]\s*:\s*['"]([^'"]+)['"]`)
	manifestDependsRe = regexp.MustCompile(`(?s)['"]depends['"]\s*:\s*\[(.*?)\]`)
	quotedStringRe    = regexp.MustCompile(`['"]([^'"]+)['"]`)
)

// ParseManifest reads a module's manifest. A strict Python-literal parse
// of the mapping runs first; when it fails, best-effort pattern matching
// still recovers name, version and depends, so even a syntactically
// broken manifest yields partial metadata.
func ParseManifest(modulePath, module string) models.Manifest {
	path := filepath.Join(modulePath, ManifestFile)
	m := models.Manifest{Module: module, FilePath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		m.ParseError = err.Error()
		return m
	}
	m.RawContent = strings.ToValidUTF8(string(data), "�")

	dict, err := parsePyDict(m.RawContent)
	if err == nil {
		if name, ok := dict["name"].(string); ok {
			m.DisplayName = name
		}
		if version, ok := dict["version"].(string); ok {
			m.Version = version
		}
		if depends, ok := dict["depends"].([]any); ok {
			for _, d := range depends {
				if s, ok := d.(string); ok {
					m.Depends = append(m.Depends, s)
				}
			}
		}
		return m
	}

	// Fallback: regex extraction over the raw text.
	m.ParseError = err.Error()
	if match := manifestNameRe.FindStringSubmatch(m.RawContent); match != nil {
		m.DisplayName = match[1]
	}
	if match := manifestVersionRe.FindStringSubmatch(m.RawContent); match != nil {
		m.Version = match[1]
	}
	if match := manifestDependsRe.FindStringSubmatch(m.RawContent); match != nil {
		for _, dep := range quotedStringRe.FindAllStringSubmatch(match[1], -1) {
			m.Depends = append(m.Depends, dep[1])
		}
	}
	return m
}

// parsePyDict parses the first {...} mapping literal in src. It covers
// the manifest subset of Python literals: strings (single, double and
// triple quoted), numbers, True/False/None, lists and nested dicts, with
// comments and trailing commas.
func parsePyDict(src string) (map[string]any, error) {
	p := &pyParser{src: []rune(src)}
	p.skipToRune('{')
	if p.eof() {
		return nil, fmt.Errorf("no mapping literal found")
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	dict, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level literal is not a mapping")
	}
	return dict, nil
}

type pyParser struct {
	src []rune
	pos int
}

func (p *pyParser) eof() bool { return p.pos >= len(p.src) }

func (p *pyParser) peek() rune { return p.src[p.pos] }

func (p *pyParser) skipToRune(r rune) {
	for !p.eof() && p.peek() != r {
		p.pos++
	}
}

// skipSpace advances over whitespace and # comments.
func (p *pyParser) skipSpace() {
	for !p.eof() {
		switch {
		case unicode.IsSpace(p.peek()):
			p.pos++
		case p.peek() == '#':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *pyParser) parseValue() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '{':
		return p.parseDict()
	case c == '[' || c == '(':
		return p.parseList(c)
	case c == '\'' || c == '"':
		return p.parseString()
	case c == '-' || unicode.IsDigit(c):
		return p.parseNumber()
	case unicode.IsLetter(c) || c == '_':
		return p.parseName()
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
	}
}

func (p *pyParser) parseDict() (map[string]any, error) {
	p.pos++ // consume '{'
	dict := make(map[string]any)
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated mapping")
		}
		if p.peek() == '}' {
			p.pos++
			return dict, nil
		}
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return nil, fmt.Errorf("expected ':' after mapping key")
		}
		p.pos++
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if ks, ok := key.(string); ok {
			dict[ks] = value
		}
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *pyParser) parseList(open rune) ([]any, error) {
	close := ']'
	if open == '(' {
		close = ')'
	}
	p.pos++ // consume opener
	var list []any
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("unterminated sequence")
		}
		if p.peek() == close {
			p.pos++
			return list, nil
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
		p.skipSpace()
		if !p.eof() && p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *pyParser) parseString() (string, error) {
	quote := p.peek()
	// Triple-quoted strings are common for manifest descriptions.
	if p.pos+2 < len(p.src) && p.src[p.pos+1] == quote && p.src[p.pos+2] == quote {
		return p.parseTripleString(quote)
	}
	p.pos++
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		switch c {
		case quote:
			p.pos++
			return sb.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				return "", fmt.Errorf("unterminated escape")
			}
			sb.WriteRune(unescape(p.peek()))
			p.pos++
		case '\n':
			return "", fmt.Errorf("newline in string literal")
		default:
			sb.WriteRune(c)
			p.pos++
		}
	}
	return "", fmt.Errorf("unterminated string")
}

func (p *pyParser) parseTripleString(quote rune) (string, error) {
	p.pos += 3
	var sb strings.Builder
	for p.pos+2 < len(p.src) {
		if p.src[p.pos] == quote && p.src[p.pos+1] == quote && p.src[p.pos+2] == quote {
			p.pos += 3
			return sb.String(), nil
		}
		if p.peek() == '\\' && p.pos+1 < len(p.src) {
			p.pos++
			sb.WriteRune(unescape(p.peek()))
			p.pos++
			continue
		}
		sb.WriteRune(p.peek())
		p.pos++
	}
	return "", fmt.Errorf("unterminated triple-quoted string")
}

func unescape(c rune) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func (p *pyParser) parseNumber() (any, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && (unicode.IsDigit(p.peek()) || p.peek() == '.' || p.peek() == '_') {
		p.pos++
	}
	text := strings.ReplaceAll(string(p.src[start:p.pos]), "_", "")
	if strings.Contains(text, ".") {
		return strconv.ParseFloat(text, 64)
	}
	return strconv.Atoi(text)
}

func (p *pyParser) parseName() (any, error) {
	start := p.pos
	for !p.eof() && (unicode.IsLetter(p.peek()) || unicode.IsDigit(p.peek()) || p.peek() == '_') {
		p.pos++
	}
	switch name := string(p.src[start:p.pos]); name {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected name %q", name)
	}
}

package extractor

import (
	"regexp"
	"strings"

	"github.com/gato25/odoo-rag/internal/models"
)

// ormBases is the fixed set of recognized ORM base-class names. A class
// is a model definition iff one of its bases matches a set member either
// directly or as the last segment of a dotted path (models.Model,
// odoo.models.TransientModel, ...).
var ormBases = []string{"Model", "TransientModel", "AbstractModel"}

// relationalFields take their target model as the first positional
// string argument when comodel_name is not spelled out.
var relationalFields = map[string]bool{
	"Many2one":  true,
	"One2many":  true,
	"Many2many": true,
}

var (
	classRe     = regexp.MustCompile(`^(\s*)class\s+(\w+)\s*\(([^)]*)\)\s*:`)
	attrRe      = regexp.MustCompile(`^\s*(_name|_inherit|_description)\s*=\s*(.+)$`)
	fieldRe     = regexp.MustCompile(`^\s*(\w+)\s*=\s*fields\.(\w+)\s*\(`)
	defRe       = regexp.MustCompile(`^(\s*)def\s+(\w+)\s*\(`)
	decoratorRe = regexp.MustCompile(`^\s*@([A-Za-z_][\w.]*)`)
)

// IsORMBase reports whether a base-class reference resolves to one of
// the recognized ORM bases, by direct name or dotted-path suffix.
func IsORMBase(base string) bool {
	base = strings.TrimSpace(base)
	for _, b := range ormBases {
		if base == b || strings.HasSuffix(base, "."+b) {
			return true
		}
	}
	return false
}

// ParseModels scans Python source for model class definitions. Classes
// whose bases match no recognized ORM base are skipped. Only literal
// constants are captured; non-literal attribute values and keyword
// arguments are ignored without error.
func ParseModels(content, module, path string) []*models.ModelDef {
	lines := strings.Split(content, "\n")
	var defs []*models.ModelDef

	for i := 0; i < len(lines); i++ {
		match := classRe.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		classIndent, className, baseList := len(match[1]), match[2], match[3]
		if !anyORMBase(baseList) {
			continue
		}

		def := &models.ModelDef{
			Module:    module,
			FilePath:  path,
			StartLine: i + 1,
			EndLine:   i + 1,
			ClassName: className,
		}
		i = scanClassBody(lines, i, classIndent, def)
		defs = append(defs, def)
	}
	return defs
}

func anyORMBase(baseList string) bool {
	for _, base := range strings.Split(baseList, ",") {
		if IsORMBase(base) {
			return true
		}
	}
	return false
}

// scanClassBody walks the indented block after a class line, collecting
// technical attributes, field declarations and methods. Returns the
// index of the last body line so the caller resumes after the class.
func scanClassBody(lines []string, classLine, classIndent int, def *models.ModelDef) int {
	var pendingDecorators []string
	last := classLine

	for i := classLine + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if indentOf(line) <= classIndent {
			break
		}
		last = i
		def.EndLine = i + 1

		if m := decoratorRe.FindStringSubmatch(line); m != nil {
			pendingDecorators = append(pendingDecorators, m[1])
			continue
		}

		if m := defRe.FindStringSubmatch(line); m != nil {
			method := models.Method{
				Name:       m[2],
				StartLine:  i + 1,
				Decorators: pendingDecorators,
			}
			pendingDecorators = nil
			end := methodEnd(lines, i, len(m[1]))
			method.EndLine = end + 1
			def.Methods = append(def.Methods, method)
			if end > last {
				last = end
				def.EndLine = end + 1
			}
			i = end
			continue
		}
		pendingDecorators = nil

		if m := attrRe.FindStringSubmatch(line); m != nil {
			if value, ok := literalString(m[2]); ok {
				switch m[1] {
				case "_name":
					def.TechnicalName = value
				case "_inherit":
					def.Inherit = value
				case "_description":
					def.Description = value
				}
			}
			continue
		}

		if m := fieldRe.FindStringSubmatch(line); m != nil {
			args, end := collectCallArgs(lines, i)
			field := parseField(m[1], m[2], args)
			def.Fields = append(def.Fields, field)
			if end > last {
				last = end
				def.EndLine = end + 1
			}
			i = end
		}
	}
	return last
}

func indentOf(line string) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 8
		default:
			return n
		}
	}
	return n
}

// methodEnd finds the last line of a def block: every following line
// that is blank or indented deeper than the def itself.
func methodEnd(lines []string, defLine, defIndent int) int {
	end := defLine
	for i := defLine + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if indentOf(lines[i]) <= defIndent {
			break
		}
		end = i
	}
	return end
}

// collectCallArgs gathers the argument text of a field constructor call
// starting on line i, spanning lines until the parentheses balance.
func collectCallArgs(lines []string, i int) (string, int) {
	var sb strings.Builder
	depth := 0
	started := false
	var quote rune
	for ; i < len(lines); i++ {
		for _, c := range lines[i] {
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				sb.WriteRune(c)
				continue
			}
			switch c {
			case '\'', '"':
				if started {
					quote = c
				}
			case '(':
				depth++
				if !started {
					started = true
					continue
				}
			case ')':
				depth--
				if started && depth == 0 {
					return sb.String(), i
				}
			}
			if started {
				sb.WriteRune(c)
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String(), len(lines) - 1
}

// parseField classifies a field assignment by the constructor attribute
// name and captures its literal-constant flags.
func parseField(name, fieldType, args string) models.Field {
	field := models.Field{Name: name, Type: fieldType}

	for argIndex, arg := range splitTopLevel(args) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		key, value, isKwarg := cutKwarg(arg)
		if !isKwarg {
			if s, ok := literalString(arg); ok && argIndex == 0 {
				if relationalFields[fieldType] {
					field.Relation = s
				} else {
					field.Label = s
				}
			}
			continue
		}
		switch key {
		case "string":
			if s, ok := literalString(value); ok {
				field.Label = s
			}
		case "required":
			field.Required = value == "True"
		case "readonly":
			field.Readonly = value == "True"
		case "comodel_name":
			if s, ok := literalString(value); ok {
				field.Relation = s
			}
		}
	}
	return field
}

// splitTopLevel splits call arguments on commas outside brackets and
// string literals.
func splitTopLevel(s string) []string {
	var parts []string
	var sb strings.Builder
	depth := 0
	var quote rune
	for _, c := range s {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			sb.WriteRune(c)
		case c == '\'' || c == '"':
			quote = c
			sb.WriteRune(c)
		case c == '(' || c == '[' || c == '{':
			depth++
			sb.WriteRune(c)
		case c == ')' || c == ']' || c == '}':
			depth--
			sb.WriteRune(c)
		case c == ',' && depth == 0:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(c)
		}
	}
	if strings.TrimSpace(sb.String()) != "" {
		parts = append(parts, sb.String())
	}
	return parts
}

// cutKwarg splits "key=value" at a top-level '=' that is not part of a
// comparison. Returns isKwarg=false for positional arguments.
func cutKwarg(arg string) (key, value string, isKwarg bool) {
	idx := strings.Index(arg, "=")
	if idx <= 0 || (idx+1 < len(arg) && arg[idx+1] == '=') {
		return "", "", false
	}
	key = strings.TrimSpace(arg[:idx])
	if !isIdentifier(key) {
		return "", "", false
	}
	return key, strings.TrimSpace(arg[idx+1:]), true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

// literalString extracts a quoted Python string literal, or the first
// string element of a literal list (the _inherit = [...] form). Anything
// non-literal reports ok=false.
func literalString(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	expr = strings.TrimSuffix(expr, ",")
	if strings.HasPrefix(expr, "[") {
		inner := strings.TrimPrefix(expr, "[")
		if idx := strings.IndexAny(inner, ",]"); idx >= 0 {
			return literalString(inner[:idx])
		}
		return "", false
	}
	if len(expr) < 2 {
		return "", false
	}
	quote := expr[0]
	if quote != '\'' && quote != '"' {
		return "", false
	}
	if expr[len(expr)-1] != quote {
		return "", false
	}
	body := expr[1 : len(expr)-1]
	if strings.ContainsRune(body, rune(quote)) {
		return "", false
	}
	return body, true
}

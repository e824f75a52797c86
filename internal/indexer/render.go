package indexer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gato25/odoo-rag/internal/models"
)

// Render produces the markdown representation of an entity: a metadata
// header (module, path, type, structural summary) followed by the raw
// content in a fenced block. Queries matching the header retrieve the
// chunk even when the literal content sits elsewhere in the split.
func Render(entity models.Entity) string {
	switch e := entity.(type) {
	case *models.ModelDef:
		return renderModel(e)
	case *models.ViewDef:
		return renderView(e)
	case *models.PlainFile:
		return renderPlainFile(e)
	case *models.Manifest:
		return renderManifest(e)
	default:
		return ""
	}
}

func writeHeader(sb *strings.Builder, title, module, path, entityType string) {
	fmt.Fprintf(sb, "# %s\n\n", title)
	fmt.Fprintf(sb, "**Module:** %s\n", module)
	fmt.Fprintf(sb, "**Path:** %s\n", path)
	fmt.Fprintf(sb, "**Type:** %s\n", entityType)
}

func renderManifest(m *models.Manifest) string {
	var sb strings.Builder
	writeHeader(&sb, manifestTitle, m.Module, m.FilePath, models.TypeManifest)
	if m.DisplayName != "" {
		fmt.Fprintf(&sb, "**Name:** %s\n", m.DisplayName)
	}
	if m.Version != "" {
		fmt.Fprintf(&sb, "**Version:** %s\n", m.Version)
	}
	if len(m.Depends) > 0 {
		fmt.Fprintf(&sb, "**Depends:** %s\n", strings.Join(m.Depends, ", "))
	}

	content := m.RawContent
	if content == "" {
		content = fmt.Sprintf("Error: %s", m.ParseError)
	}
	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "```python\n%s\n```", content)
	return sb.String()
}

const manifestTitle = "__manifest__.py"

func renderModel(m *models.ModelDef) string {
	var sb strings.Builder
	writeHeader(&sb, m.ClassName, m.Module, m.FilePath, models.TypeModel)
	fmt.Fprintf(&sb, "**Lines:** %d-%d\n", m.StartLine, m.EndLine)
	if m.TechnicalName != "" {
		fmt.Fprintf(&sb, "**Model:** %s\n", m.TechnicalName)
	}
	if m.Inherit != "" {
		fmt.Fprintf(&sb, "**Inherits:** %s\n", m.Inherit)
	}
	if m.Description != "" {
		fmt.Fprintf(&sb, "**Description:** %s\n", m.Description)
	}

	if len(m.Fields) > 0 {
		sb.WriteString("\n**Fields:**\n")
		for _, f := range m.Fields {
			fmt.Fprintf(&sb, "- %s (%s)", f.Name, f.Type)
			if f.Label != "" {
				fmt.Fprintf(&sb, ": %s", f.Label)
			}
			if f.Relation != "" {
				fmt.Fprintf(&sb, " -> %s", f.Relation)
			}
			var flags []string
			if f.Required {
				flags = append(flags, "required")
			}
			if f.Readonly {
				flags = append(flags, "readonly")
			}
			if len(flags) > 0 {
				fmt.Fprintf(&sb, " [%s]", strings.Join(flags, ", "))
			}
			sb.WriteString("\n")
		}
	}

	if len(m.Methods) > 0 {
		sb.WriteString("\n**Methods:**\n")
		for _, method := range m.Methods {
			fmt.Fprintf(&sb, "- %s (lines %d-%d)", method.Name, method.StartLine, method.EndLine)
			if len(method.Decorators) > 0 {
				fmt.Fprintf(&sb, " @%s", strings.Join(method.Decorators, " @"))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderView(v *models.ViewDef) string {
	var sb strings.Builder
	title := v.ID
	if title == "" {
		title = filepath.Base(v.FilePath)
	}
	writeHeader(&sb, title, v.Module, v.FilePath, models.TypeView)
	if v.Name != "" {
		fmt.Fprintf(&sb, "**Name:** %s\n", v.Name)
	}
	if v.Model != "" {
		fmt.Fprintf(&sb, "**Model:** %s\n", v.Model)
	}
	if v.Type != "" {
		fmt.Fprintf(&sb, "**View Type:** %s\n", v.Type)
	}
	if v.InheritID != "" {
		fmt.Fprintf(&sb, "**Inherits:** %s\n", v.InheritID)
	}
	if v.Arch != "" {
		sb.WriteString("\n---\n\n")
		fmt.Fprintf(&sb, "```xml\n%s\n```", v.Arch)
	}
	return sb.String()
}

func renderPlainFile(f *models.PlainFile) string {
	var sb strings.Builder
	writeHeader(&sb, filepath.Base(f.FilePath), f.Module, f.FilePath, f.Kind)
	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "```%s\n%s\n```", f.Kind, f.Content)
	return sb.String()
}

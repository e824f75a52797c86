package extractor

import (
	"encoding/xml"
	"strings"

	"github.com/gato25/odoo-rag/internal/models"
)

// viewModelSentinel marks a record element as a UI view declaration.
const viewModelSentinel = "ir.ui.view"

// xmlNode is a generic element tree used to walk arbitrary data XML and
// to serialize the arch body back to markup.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// ParseViews extracts every ir.ui.view record from a data XML file.
// Files without view records return an empty slice and no error.
func ParseViews(content, module, path string) ([]*models.ViewDef, error) {
	var root xmlNode
	if err := xml.Unmarshal([]byte(content), &root); err != nil {
		return nil, err
	}

	var views []*models.ViewDef
	collectViews(&root, module, path, &views)
	return views, nil
}

func collectViews(n *xmlNode, module, path string, views *[]*models.ViewDef) {
	if n.XMLName.Local == "record" && n.attr("model") == viewModelSentinel {
		*views = append(*views, viewFromRecord(n, module, path))
		return
	}
	for i := range n.Children {
		collectViews(&n.Children[i], module, path, views)
	}
}

func viewFromRecord(record *xmlNode, module, path string) *models.ViewDef {
	view := &models.ViewDef{
		Module:   module,
		FilePath: path,
		ID:       record.attr("id"),
	}
	for i := range record.Children {
		child := &record.Children[i]
		if child.XMLName.Local != "field" {
			continue
		}
		switch child.attr("name") {
		case "name":
			view.Name = strings.TrimSpace(child.Text)
		case "model":
			view.Model = strings.TrimSpace(child.Text)
		case "type":
			view.Type = strings.TrimSpace(child.Text)
		case "inherit_id":
			// Parent views are referenced by xml id, not embedded.
			if ref := child.attr("ref"); ref != "" {
				view.InheritID = ref
			} else {
				view.InheritID = strings.TrimSpace(child.Text)
			}
		case "arch":
			if len(child.Children) > 0 {
				var sb strings.Builder
				writeXML(&child.Children[0], &sb, 0)
				view.Arch = sb.String()
			}
		}
	}
	return view
}

// writeXML serializes an element tree back to indented markup. Character
// data is emitted before child elements, which is exact for the
// element-only and leaf-text shapes view architectures use.
func writeXML(n *xmlNode, sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(n.XMLName.Local)
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name.Local)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteString(`"`)
	}

	text := strings.TrimSpace(n.Text)
	if text == "" && len(n.Children) == 0 {
		sb.WriteString("/>\n")
		return
	}
	sb.WriteString(">")
	if len(n.Children) == 0 {
		sb.WriteString(escapeText(text))
	} else {
		if text != "" {
			sb.WriteString(escapeText(text))
		}
		sb.WriteString("\n")
		for i := range n.Children {
			writeXML(&n.Children[i], sb, depth+1)
		}
		sb.WriteString(indent)
	}
	sb.WriteString("</")
	sb.WriteString(n.XMLName.Local)
	sb.WriteString(">\n")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

func escapeAttr(s string) string {
	return strings.ReplaceAll(escapeText(s), `"`, "&quot;")
}

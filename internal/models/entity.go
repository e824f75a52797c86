package models

// Entity type tags used in chunk metadata.
const (
	TypeManifest = "manifest"
	TypeModel    = "model"
	TypeView     = "view"
)

// File kind tags for plain files, derived from the file suffix.
const (
	KindPython     = "python"
	KindXML        = "xml"
	KindJavaScript = "javascript"
	KindCSS        = "css"
	KindSCSS       = "scss"
	KindCSV        = "csv"
	KindOther      = "other"
)

// Entity is one structured extraction from a source file. Cross-entity
// references (inherit targets, view models, field relations) are plain
// name strings resolved at query time by metadata filtering.
type Entity interface {
	EntityType() string
	ModuleName() string
	SourcePath() string
}

// Manifest holds what could be recovered from a module's __manifest__.py.
// ParseError is set when the strict literal parse failed and only the
// regex fallback ran; RawContent is always present.
type Manifest struct {
	Module      string
	FilePath    string
	RawContent  string
	DisplayName string
	Version     string
	Depends     []string
	ParseError  string
}

func (m *Manifest) EntityType() string { return TypeManifest }
func (m *Manifest) ModuleName() string { return m.Module }
func (m *Manifest) SourcePath() string { return m.FilePath }

// Field is one ORM field declaration inside a model class.
type Field struct {
	Name     string
	Type     string
	Label    string
	Required bool
	Readonly bool
	Relation string
}

// Method is one function definition inside a model class.
type Method struct {
	Name       string
	StartLine  int
	EndLine    int
	Decorators []string
}

// ModelDef is a class whose base resolves to a recognized ORM base.
// TechnicalName, Inherit and Description are empty when the class does
// not declare them as literal constants.
type ModelDef struct {
	Module        string
	FilePath      string
	StartLine     int
	EndLine       int
	ClassName     string
	TechnicalName string
	Inherit       string
	Description   string
	Fields        []Field
	Methods       []Method
}

func (m *ModelDef) EntityType() string { return TypeModel }
func (m *ModelDef) ModuleName() string { return m.Module }
func (m *ModelDef) SourcePath() string { return m.FilePath }

// ViewDef is one ir.ui.view record from a data XML file. Arch holds the
// serialized first child element of the arch field, or empty.
type ViewDef struct {
	Module    string
	FilePath  string
	ID        string
	Name      string
	Model     string
	Type      string
	InheritID string
	Arch      string
}

func (v *ViewDef) EntityType() string { return TypeView }
func (v *ViewDef) ModuleName() string { return v.Module }
func (v *ViewDef) SourcePath() string { return v.FilePath }

// PlainFile is any file that produced no structured records, including
// files whose parse failed (Content then carries an error marker).
type PlainFile struct {
	Module   string
	FilePath string
	Kind     string
	Content  string
	Size     int
}

func (f *PlainFile) EntityType() string { return f.Kind }
func (f *PlainFile) ModuleName() string { return f.Module }
func (f *PlainFile) SourcePath() string { return f.FilePath }

// Package is one Odoo module: its manifest plus every extracted entity.
type Package struct {
	Name     string
	Path     string
	Manifest Manifest
	Entities []Entity
}

package symbol

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a fixture file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the fixture format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("cannot infer fixture format from %q", path)
	}
}

// fileLibrary is the on-disk shape of a side.
type fileLibrary struct {
	Name       string          `yaml:"name" toml:"name" json:"name"`
	Namespaces []fileNamespace `yaml:"namespaces" toml:"namespaces" json:"namespaces"`
}

type fileNamespace struct {
	Name  string     `yaml:"name" toml:"name" json:"name"`
	Types []fileType `yaml:"types" toml:"types" json:"types"`
}

type fileType struct {
	Name              string          `yaml:"name" toml:"name" json:"name"`
	Visibility        string          `yaml:"visibility" toml:"visibility" json:"visibility"`
	Arity             int             `yaml:"arity" toml:"arity" json:"arity"`
	Forwarded         bool            `yaml:"forwarded" toml:"forwarded" json:"forwarded"`
	CompilerGenerated bool            `yaml:"compiler_generated" toml:"compiler_generated" json:"compiler_generated"`
	Attributes        []fileAttribute `yaml:"attributes" toml:"attributes" json:"attributes"`
	Members           []fileMember    `yaml:"members" toml:"members" json:"members"`
	Types             []fileType      `yaml:"types" toml:"types" json:"types"`
}

type fileMember struct {
	Kind              string          `yaml:"kind" toml:"kind" json:"kind"`
	Name              string          `yaml:"name" toml:"name" json:"name"`
	Visibility        string          `yaml:"visibility" toml:"visibility" json:"visibility"`
	Parameters        []string        `yaml:"parameters" toml:"parameters" json:"parameters"`
	Type              string          `yaml:"type" toml:"type" json:"type"`
	Arity             int             `yaml:"arity" toml:"arity" json:"arity"`
	Explicit          string          `yaml:"explicit" toml:"explicit" json:"explicit"`
	Accessors         []string        `yaml:"accessors" toml:"accessors" json:"accessors"`
	CompilerGenerated bool            `yaml:"compiler_generated" toml:"compiler_generated" json:"compiler_generated"`
	Attributes        []fileAttribute `yaml:"attributes" toml:"attributes" json:"attributes"`
}

type fileAttribute struct {
	Type   string   `yaml:"type" toml:"type" json:"type"`
	TypeOf []string `yaml:"typeof" toml:"typeof" json:"typeof"`
}

// LoadFile reads a fixture file and returns the linked library it describes.
// The library name defaults to the file name without extension.
func LoadFile(path string) (*Library, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	lib, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}

	if lib.Name == "" {
		lib.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return lib, nil
}

// Parse decodes fixture data in the given format into a linked library.
func Parse(data []byte, format Format) (*Library, error) {
	var fl fileLibrary

	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &fl)
	case FormatTOML:
		err = toml.Unmarshal(data, &fl)
	case FormatJSON:
		err = json.Unmarshal(data, &fl)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse %s fixture: %w", format, err)
	}

	return fl.build()
}

// build converts the decoded file into symbols. Namespaces that appear more
// than once are merged so each namespace name yields one symbol.
func (fl *fileLibrary) build() (*Library, error) {
	lib := &Library{Name: fl.Name}
	byName := map[string]*Symbol{}

	for _, fns := range fl.Namespaces {
		ns, ok := byName[fns.Name]
		if !ok {
			ns = NewNamespace(fns.Name)
			byName[fns.Name] = ns
			lib.Namespaces = append(lib.Namespaces, ns)
		}

		for i := range fns.Types {
			if err := fns.Types[i].build(ns); err != nil {
				return nil, err
			}
		}
	}

	lib.Link()

	return lib, nil
}

func (ft *fileType) build(parent *Symbol) error {
	vis, err := parseVisibilityDefault(ft.Visibility)
	if err != nil {
		return fmt.Errorf("type %s.%s: %w", parent.FullName(), ft.Name, err)
	}

	if ft.Name == "" {
		return fmt.Errorf("type in %q has no name", parent.FullName())
	}

	t := parent.AddType(ft.Name, vis).WithGenericArity(ft.Arity)
	t.Forwarded = ft.Forwarded
	t.CompilerGenerated = ft.CompilerGenerated
	t.Attributes = toAttributes(ft.Attributes)

	for i := range ft.Members {
		if err := ft.Members[i].build(t); err != nil {
			return err
		}
	}

	t.addMissingAccessors()

	for i := range ft.Types {
		if err := ft.Types[i].build(t); err != nil {
			return err
		}
	}

	return nil
}

func (fm *fileMember) build(t *Symbol) error {
	kind, err := ParseKind(fm.Kind)
	if err != nil {
		return fmt.Errorf("member %s.%s: %w", t.FullName(), fm.Name, err)
	}

	if !kind.IsMember() {
		return fmt.Errorf("member %s.%s: kind %s is not a member kind", t.FullName(), fm.Name, kind)
	}

	vis, err := parseVisibilityDefault(fm.Visibility)
	if err != nil {
		return fmt.Errorf("member %s.%s: %w", t.FullName(), fm.Name, err)
	}

	ctor := isConstructorKind(fm.Kind)

	name := fm.Name
	if ctor && name == "" {
		name = ".ctor"
	}

	if name == "" {
		return fmt.Errorf("%s in %s has no name", kind, t.FullName())
	}

	t.add(&Symbol{
		Name:              name,
		Kind:              kind,
		Visibility:        vis,
		Parameters:        toParameters(fm.Parameters),
		ReturnType:        fm.Type,
		GenericArity:      fm.Arity,
		Attributes:        toAttributes(fm.Attributes),
		CompilerGenerated: fm.CompilerGenerated,
		Constructor:       ctor,
		ExplicitInterface: fm.Explicit,
		Accessors:         fm.Accessors,
	})

	return nil
}

func isConstructorKind(s string) bool {
	k := strings.ToLower(strings.TrimSpace(s))

	return k == "constructor" || k == "ctor"
}

// parseVisibilityDefault treats a missing visibility as public.
func parseVisibilityDefault(s string) (Visibility, error) {
	if strings.TrimSpace(s) == "" {
		return Public, nil
	}

	return ParseVisibility(s)
}

func toAttributes(fas []fileAttribute) []Attribute {
	if len(fas) == 0 {
		return nil
	}

	out := make([]Attribute, len(fas))
	for i, fa := range fas {
		out[i] = Attribute{Type: fa.Type, TypeOfArgs: fa.TypeOf}
	}

	return out
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"levelgen.dev/internal/generation"
)

// Definition is the on-disk description of a module catalog
type Definition struct {
	Name    string      `json:"name" yaml:"name"`
	Modules []ModuleDef `json:"modules" yaml:"modules"`
}

// ModuleDef describes one module template
type ModuleDef struct {
	Name  string          `json:"name" yaml:"name"`
	Size  generation.Size `json:"size" yaml:"size"`
	Doors []DoorDef       `json:"doors" yaml:"doors"`
}

// DoorDef describes one door. Side is optional; when present it must agree
// with the side derived from the offset.
type DoorDef struct {
	Offset       generation.Vec2 `json:"offset" yaml:"offset"`
	Side         string          `json:"side,omitempty" yaml:"side,omitempty"`
	EntranceExit bool            `json:"entrance_exit,omitempty" yaml:"entrance_exit,omitempty"`
}

// LoadFile reads a catalog definition; the extension picks JSON or YAML
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Parse decodes a definition in "json" or "yaml"/"yml" format
func Parse(data []byte, format string) (*Definition, error) {
	var def Definition
	switch format {
	case "json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return &def, nil
}

// Build converts a definition into templates and partitions them
func Build(def *Definition) (*generation.Catalog, error) {
	names := mapset.New[string]()
	templates := make([]*generation.ModuleTemplate, 0, len(def.Modules))

	for i, m := range def.Modules {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("module_%d", i)
		}
		if names.Has(name) {
			return nil, fmt.Errorf("catalog %q: duplicate module name %q", def.Name, name)
		}
		names.Put(name)

		doors := make([]generation.DoorTemplate, len(m.Doors))
		for j, d := range m.Doors {
			derived := generation.SideFromOffset(d.Offset)
			if d.Side != "" {
				side, err := generation.ParseDoorSide(d.Side)
				if err != nil {
					return nil, fmt.Errorf("catalog %q module %q door %d: %w", def.Name, name, j, err)
				}
				if side != derived {
					return nil, fmt.Errorf("catalog %q module %q door %d: side %s does not match offset %v (%s)",
						def.Name, name, j, side, d.Offset, derived)
				}
			}
			doors[j] = generation.DoorTemplate{Offset: d.Offset, Side: derived, EntranceExit: d.EntranceExit}
		}

		tpl, err := generation.NewModuleTemplate(name, m.Size, doors)
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", def.Name, err)
		}
		templates = append(templates, tpl)
	}

	cat, err := generation.NewCatalog(templates)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", def.Name, err)
	}
	return cat, nil
}

// Load reads and builds a catalog file in one step
func Load(path string) (*generation.Catalog, *Definition, error) {
	def, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	cat, err := Build(def)
	if err != nil {
		return nil, nil, err
	}
	return cat, def, nil
}

// Describe turns built templates back into a definition, with sides filled in
func Describe(name string, templates []*generation.ModuleTemplate) *Definition {
	def := &Definition{Name: name, Modules: make([]ModuleDef, len(templates))}
	for i, t := range templates {
		md := ModuleDef{Name: t.Name(), Size: t.Size()}
		for _, d := range t.Doors() {
			md.Doors = append(md.Doors, DoorDef{Offset: d.Offset, Side: d.Side.String(), EntranceExit: d.EntranceExit})
		}
		def.Modules[i] = md
	}
	return def
}

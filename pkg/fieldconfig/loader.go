package fieldconfig

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autocomplete/pkg/autocomplete"
)

// Definition is one field type as declared in a config file.
type Definition struct {
	Name              string
	Source            string
	Config            autocomplete.Config
	Overridable       []string
	ExtraSearchParams map[string]string
	// File is the path the definition was read from.
	File string
}

// Set holds the definitions loaded from one or more files.
type Set struct {
	definitions map[string]Definition
}

type documentFile struct {
	FieldTypes map[string]definitionFile `yaml:"field_types"`
}

type definitionFile struct {
	Source            string            `yaml:"source"`
	Overridable       []string          `yaml:"overridable"`
	ExtraSearchParams map[string]string `yaml:"extra_search_params"`
	Config            yaml.Node         `yaml:"config"`
}

// LoadFS walks fsys and parses every JSON/YAML file it finds. When fsys is
// nil the returned set is empty.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{definitions: make(map[string]Definition)}
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isConfigFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("fieldconfig: read %s: %w", path, err)
		}
		defs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if existing, exists := set.definitions[def.Name]; exists {
				return fmt.Errorf("fieldconfig: duplicate field type %q (files %s and %s)", def.Name, existing.File, path)
			}
			set.definitions[def.Name] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse decodes a single file. YAML decoding accepts JSON documents too.
// Definitions come back sorted by name.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("fieldconfig: file %s is empty", source)
	}

	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fieldconfig: parse %s: %w", source, err)
	}

	defs := make([]Definition, 0, len(doc.FieldTypes))
	for rawName, raw := range doc.FieldTypes {
		def, err := normaliseDefinition(rawName, raw, source)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

func normaliseDefinition(rawName string, raw definitionFile, source string) (Definition, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return Definition{}, fmt.Errorf("fieldconfig: file %s defines an empty field type name", source)
	}
	sourceName := strings.TrimSpace(raw.Source)
	if sourceName == "" {
		return Definition{}, fmt.Errorf("fieldconfig: field type %q (file %s) has no source", name, source)
	}

	cfg := autocomplete.DefaultConfig()
	if !raw.Config.IsZero() {
		if err := raw.Config.Decode(&cfg); err != nil {
			return Definition{}, fmt.Errorf("fieldconfig: field type %q (file %s) config: %w", name, source, err)
		}
	}

	def := Definition{
		Name:              name,
		Source:            sourceName,
		Config:            cfg,
		ExtraSearchParams: cloneStringMap(raw.ExtraSearchParams),
		File:              source,
	}
	if raw.Overridable != nil {
		def.Overridable = make([]string, 0, len(raw.Overridable))
		for _, key := range raw.Overridable {
			def.Overridable = append(def.Overridable, strings.ToLower(strings.TrimSpace(key)))
		}
	}
	return def, nil
}

// Definition returns the definition registered under name.
func (s *Set) Definition(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[name]
	return def, ok
}

// Definitions returns all definitions sorted by name.
func (s *Set) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, 0, len(s.definitions))
	for _, def := range s.definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Empty reports whether the set holds any definitions.
func (s *Set) Empty() bool {
	return s == nil || len(s.definitions) == 0
}

// FieldType binds the definition to source.
func (d Definition) FieldType(source autocomplete.ItemSource) autocomplete.FieldType {
	return autocomplete.FieldType{
		Name:              d.Name,
		Source:            source,
		Config:            d.Config,
		Overridable:       d.Overridable,
		ExtraSearchParams: cloneStringMap(d.ExtraSearchParams),
	}
}

// Apply registers every definition, resolving its source by name. It stops at
// the first failure.
func Apply(reg *autocomplete.Registry, defs []Definition, sources map[string]autocomplete.ItemSource) error {
	if reg == nil {
		return fmt.Errorf("fieldconfig: registry is nil")
	}
	for _, def := range defs {
		source, ok := sources[def.Source]
		if !ok || source == nil {
			return fmt.Errorf("%w: field type %q (file %s) references unknown source %q",
				autocomplete.ErrInvalidFieldConfiguration, def.Name, def.File, def.Source)
		}
		if err := reg.Register(def.FieldType(source)); err != nil {
			return fmt.Errorf("fieldconfig: register %q: %w", def.Name, err)
		}
	}
	return nil
}

func isConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func cloneStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

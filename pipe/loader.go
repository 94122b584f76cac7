package pipe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/lyteflow/lyteflow/errors"
)

// Definition is the serializable form of a pipe system: elements by kind,
// data connections and requirements, all addressed by element name. It
// round-trips through YAML and JSON and is rebuilt into a Graph through a
// Registry.
type Definition struct {
	Name         string           `yaml:"name" json:"name"`
	Elements     []ElementDef     `yaml:"elements" json:"elements"`
	Connections  []ConnectionDef  `yaml:"connections" json:"connections"`
	Requirements []RequirementDef `yaml:"requirements,omitempty" json:"requirements,omitempty"`
}

// ElementDef defines one element. Kind "inlet" and "outlet" are built in;
// every other kind is looked up in the Registry.
type ElementDef struct {
	Name    string         `yaml:"name" json:"name"`
	Kind    string         `yaml:"kind" json:"kind"`
	Convert bool           `yaml:"convert,omitempty" json:"convert,omitempty"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// ConnectionDef defines one data edge by element names.
type ConnectionDef struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// RequirementDef defines one requirement edge by element names.
type RequirementDef struct {
	Source    string `yaml:"source" json:"source"`
	Target    string `yaml:"target" json:"target"`
	Attribute string `yaml:"attribute" json:"attribute"`
	Argument  string `yaml:"argument" json:"argument"`
}

// KindInlet and KindOutlet are the built-in element kinds.
const (
	KindInlet  = "inlet"
	KindOutlet = "outlet"
)

// LoadDefinition reads a definition from a YAML or JSON file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidDefinition("reading definition file").WithCause(err).
			WithDetail("path", path)
	}

	var def Definition
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &def)
	} else {
		err = yaml.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, errors.InvalidDefinition("parsing definition file").WithCause(err).
			WithDetail("path", path)
	}
	return &def, nil
}

// SaveDefinition writes a definition to a YAML or JSON file, chosen by the
// path's extension.
func SaveDefinition(def *Definition, path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(def, "", "  ")
	} else {
		data, err = yaml.Marshal(def)
	}
	if err != nil {
		return errors.InvalidDefinition("encoding definition").WithCause(err)
	}
	return os.WriteFile(path, data, 0o644)
}

// BuildGraph reconstructs a Graph from a definition. Inlet and outlet order
// follow their order of appearance among the elements.
func BuildGraph(def *Definition, reg *Registry) (*Graph, error) {
	b := NewBuilder()
	handles := make(map[string]Handle, len(def.Elements))

	for _, e := range def.Elements {
		if e.Name == "" {
			return nil, errors.InvalidDefinition("element with empty name")
		}
		if _, exists := handles[e.Name]; exists {
			return nil, errors.InvalidDefinition("duplicate element name in definition").
				WithDetail("element", e.Name)
		}
		switch e.Kind {
		case KindInlet:
			handles[e.Name] = b.AddInlet(InletSpec{Name: e.Name, Convert: e.Convert})
		case KindOutlet:
			handles[e.Name] = b.AddOutlet(e.Name)
		default:
			// Copied so injecting the name never leaks into the definition.
			opts := make(map[string]any, len(e.Options)+1)
			for k, v := range e.Options {
				opts[k] = v
			}
			opts["name"] = e.Name
			elem, err := reg.New(e.Kind, opts)
			if err != nil {
				return nil, err
			}
			handles[e.Name] = b.Add(elem)
		}
	}

	lookup := func(name string) (Handle, error) {
		h, found := handles[name]
		if !found {
			return 0, errors.NotFound("element", name)
		}
		return h, nil
	}

	for _, c := range def.Connections {
		from, err := lookup(c.From)
		if err != nil {
			return nil, err
		}
		to, err := lookup(c.To)
		if err != nil {
			return nil, err
		}
		if err := b.Connect(from, to); err != nil {
			return nil, err
		}
	}

	for _, r := range def.Requirements {
		target, err := lookup(r.Target)
		if err != nil {
			return nil, err
		}
		source, err := lookup(r.Source)
		if err != nil {
			return nil, err
		}
		if err := b.Require(target, source, r.Attribute, r.Argument); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// BuildSystem is BuildGraph plus System construction.
func BuildSystem(def *Definition, reg *Registry, opts Options) (*System, error) {
	g, err := BuildGraph(def, reg)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = def.Name
	}
	return NewSystem(g, opts)
}

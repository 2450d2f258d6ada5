package derive

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"strings"

	"gopkg.in/yaml.v3"
)

// A description is a YAML rendition of a Package, e.g.,
//
//	package: calc
//	types:
//	  - name: Pair
//	    params: [{name: T, constraint: span.Node}]
//	    fields: [Left, Right]
//	  - name: Expr
//	    variants:
//	      - {name: Num, fields: [Lit]}
//	      - {name: Paren, fields: [Open, X, Close]}
type description struct {
	Package string     `yaml:"package"`
	Types   []typeDesc `yaml:"types"`
}

type typeDesc struct {
	Name     string      `yaml:"name"`
	Params   []paramDesc `yaml:"params,omitempty"`
	Only     string      `yaml:"only,omitempty"`
	Fields   []string    `yaml:"fields,omitempty,flow"`
	Variants []typeDesc  `yaml:"variants,omitempty"`

	line, column int
}

type paramDesc struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

func (t *typeDesc) UnmarshalYAML(value *yaml.Node) error {
	type plain typeDesc
	var p plain
	// Decode ignores KnownFields, so reject unknown keys here.
	line, column := value.Line, value.Column
	for k := 0; k+1 < len(value.Content); k += 2 {
		key := value.Content[k]
		switch key.Value {
		case "name":
			line, column = key.Line, key.Column
		case "params", "only", "fields", "variants":
		default:
			return fmt.Errorf("line %d: field %s not found in type description", key.Line, key.Value)
		}
	}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = typeDesc(p)
	t.line, t.column = line, column
	return nil
}

// ParseDescription parses a YAML shape description.  The name is used
// in positions of any diagnostics.
func ParseDescription(name string, data []byte) (*Package, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var d description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if d.Package == "" {
		return nil, fmt.Errorf("%s: package name missing", name)
	}
	if !token.IsIdentifier(d.Package) {
		return nil, fmt.Errorf("%s: bad package name %q", name, d.Package)
	}
	lines := strings.Split(string(data), "\n")
	pkg := &Package{Name: d.Package}
	var errs []error
	for _, td := range d.Types {
		t, err := td.shape(name, lines, true)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pkg.Types = append(pkg.Types, t)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (td *typeDesc) shape(filename string, lines []string, top bool) (*Type, error) {
	pos := token.Position{Filename: filename, Line: td.line, Column: td.column}
	if !token.IsIdentifier(td.Name) {
		return nil, fmt.Errorf("%s: bad type name %q", pos, td.Name)
	}
	methods, ok := ParseMethods(td.Only)
	if !ok {
		return nil, fmt.Errorf("%s: type %s: bad only value %q", pos, td.Name, td.Only)
	}
	t := &Type{Name: td.Name, Methods: methods, Pos: pos}
	if td.line >= 1 && td.line <= len(lines) {
		t.line = lines[td.line-1]
	}
	for _, p := range td.Params {
		if !token.IsIdentifier(p.Name) && p.Name != "_" {
			return nil, fmt.Errorf("%s: type %s: bad type parameter name %q", pos, td.Name, p.Name)
		}
		constraint := p.Constraint
		if constraint == "" {
			constraint = "any"
		}
		t.Params = append(t.Params, Param{Name: p.Name, Constraint: constraint})
	}
	for _, f := range td.Fields {
		if !token.IsIdentifier(f) {
			return nil, fmt.Errorf("%s: type %s: bad field name %q", pos, td.Name, f)
		}
		t.Slots = append(t.Slots, Slot{Name: f})
	}
	switch {
	case len(td.Fields) > 0 && len(td.Variants) > 0:
		t.Kind = Invalid
		t.Reason = "both fields and variants given"
	case len(td.Variants) > 0 && !top:
		// Reported by plan as a nested union.
		t.Kind = Union
	case len(td.Variants) > 0:
		t.Kind = Union
		for k := range td.Variants {
			v, err := td.Variants[k].shape(filename, lines, false)
			if err != nil {
				return nil, err
			}
			t.Variants = append(t.Variants, v)
		}
	default:
		t.Kind = Struct
	}
	return t, nil
}

// Describe renders p as a YAML shape description.
func Describe(p *Package) ([]byte, error) {
	d := description{Package: p.Name}
	for _, t := range p.Types {
		d.Types = append(d.Types, describeType(t))
	}
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func describeType(t *Type) typeDesc {
	td := typeDesc{Name: t.Name, Only: t.Methods.String()}
	for _, p := range t.Params {
		td.Params = append(td.Params, paramDesc(p))
	}
	for _, s := range t.Slots {
		td.Fields = append(td.Fields, s.Name)
	}
	for _, v := range t.Variants {
		td.Variants = append(td.Variants, describeType(v))
	}
	return td
}

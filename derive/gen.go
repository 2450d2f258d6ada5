package derive

import (
	"bytes"
	"fmt"
	"slices"

	"golang.org/x/tools/imports"
)

// Header is the first line of every generated file.
const Header = "// Code generated by spangen; DO NOT EDIT."

// Options control which types are selected and how methods are written.
type Options struct {
	// Types restricts derivation to the named types.  When empty, the
	// types whose doc comment carries a span:derive directive are
	// selected.
	Types []string
	// Methods are derived for the types named in Types.  Zero means both.
	Methods Methods
	// Pointer selects pointer receivers.
	Pointer bool
}

// An entry is a struct type for which methods are written.
type entry struct {
	typ     *Type
	parent  *Type
	methods Methods
}

// plan flattens the types of p into the structs that receive methods,
// merging variants shared between unions, and reports every shape that
// cannot be derived.
func plan(p *Package) ([]*entry, error) {
	var entries []*entry
	byName := make(map[string]*entry)
	add := func(t, parent *Type, methods Methods) {
		if e, ok := byName[t.Name]; ok {
			e.methods |= methods
			return
		}
		e := &entry{typ: t, parent: parent, methods: methods}
		byName[t.Name] = e
		entries = append(entries, e)
	}
	var errs ErrorList
	for _, t := range p.Types {
		methods := t.Methods
		if methods == 0 {
			methods = Both
		}
		switch t.Kind {
		case Struct:
			add(t, nil, methods)
		case Union:
			if len(t.Variants) == 0 {
				reason := t.Reason
				if reason == "" {
					reason = "union has no variants"
				}
				errs.Append(ErrUnsupportedShape, t, unsupported(t, reason))
			}
			for _, v := range t.Variants {
				add(v, t, methods)
			}
		default:
			errs.Append(ErrUnsupportedShape, t, unsupported(t, t.Reason))
		}
	}
	for _, e := range entries {
		e.methods &^= e.typ.Declared
		if e.methods == 0 {
			continue
		}
		t := e.typ
		switch {
		case t.Kind != Struct && e.parent != nil:
			reason := t.Reason
			if t.Kind == Union {
				reason = "variant is itself a union"
			}
			errs.Append(ErrUnsupportedShape, t, unsupported(e.parent, fmt.Sprintf("variant %s: %s", t.Name, reason)))
		case len(t.Slots) == 0 && e.parent != nil:
			errs.Append(ErrEmptyShape, t, emptyVariant(e.parent, t))
		case len(t.Slots) == 0:
			errs.Append(ErrEmptyShape, t, emptyShape(t))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return slices.DeleteFunc(entries, func(e *entry) bool { return e.methods == 0 }), nil
}

// Check reports every type of p whose methods cannot be derived.
func Check(p *Package) error {
	_, err := plan(p)
	return err
}

// Generate returns the formatted source of a file declaring the derived
// methods for the types of p.  If any type cannot be derived, Generate
// returns an ErrorList and no source.
func Generate(p *Package, opts Options) ([]byte, error) {
	entries, err := plan(p)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n\npackage %s\n", Header, p.Name)
	for _, e := range entries {
		t := e.typ
		recv := receiverName(t) + " "
		if opts.Pointer {
			recv += "*"
		}
		recv += t.Receiver()
		if e.methods&Pos != 0 {
			fmt.Fprintf(&b, "\nfunc (%s) Pos() int {\n\treturn %s.%s.Pos()\n}\n", recv, receiverName(t), t.First().Name)
		}
		if e.methods&End != 0 {
			fmt.Fprintf(&b, "\nfunc (%s) End() int {\n\treturn %s.%s.End()\n}\n", recv, receiverName(t), t.Last().Name)
		}
	}
	out, err := imports.Process(p.Name+"_gen.go", b.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return out, nil
}

// receiverName returns a receiver name not shadowing a type parameter.
func receiverName(t *Type) string {
	taken := func(name string) bool {
		return slices.ContainsFunc(t.Params, func(p Param) bool { return p.Name == name })
	}
	for _, name := range []string{"x", "n", "v"} {
		if !taken(name) {
			return name
		}
	}
	for k := 0; ; k++ {
		if name := fmt.Sprintf("x%d", k); !taken(name) {
			return name
		}
	}
}

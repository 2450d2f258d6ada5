// Package derive synthesizes Pos and End methods for composite syntax-tree
// types.
//
// The engine works on shapes.  A struct shape is the ordered list of the
// struct's selectable fields ("slots"); its derived Pos delegates to the
// first slot and its derived End to the last.  A union shape is a sealed
// interface together with the struct types that implement it ("variants");
// each variant gets its own first/last delegation, so calling Pos or End
// through the interface dispatches to the active variant.
//
// Shapes come from Go source (Inspect, InspectDir) or from YAML shape
// descriptions (ParseDescription), and Generate turns a Package of shapes
// into Go source.  Nothing here runs when the generated methods are
// called: the methods simply call Pos or End on the chosen field.
package derive

import (
	"go/token"
	"strings"
)

type Kind int

const (
	Struct Kind = iota
	Union
	// Invalid marks a type that cannot be expressed as a slot list or a
	// union of slot lists.  Reason says why.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Union:
		return "union"
	default:
		return "invalid"
	}
}

// Methods is the set of methods to derive for a type.
type Methods uint8

const (
	Pos Methods = 1 << iota
	End

	Both = Pos | End
)

// ParseMethods parses the argument of a span:derive directive or the
// --only flag.  The empty string means both methods.
func ParseMethods(s string) (Methods, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Both, true
	case "pos", "start":
		return Pos, true
	case "end":
		return End, true
	}
	return 0, false
}

func (m Methods) String() string {
	switch m {
	case Pos:
		return "pos"
	case End:
		return "end"
	}
	return ""
}

// A Param is a type parameter of a generic type, kept as written.
type Param struct {
	Name       string
	Constraint string
}

// A Slot is a field that generated code may select.  For an embedded
// field, Name is the base name of the embedded type.
type Slot struct {
	Name string
	Type string
}

// A Type is the shape of one type that is to have methods derived.
type Type struct {
	Name     string
	Params   []Param
	Kind     Kind
	Slots    []Slot
	Variants []*Type
	Methods  Methods
	// Declared are the methods the type already declares by hand.  They
	// are never generated and a variant declaring both needs no slots.
	Declared Methods
	// Reason explains why an Invalid type is unsupported.
	Reason string
	Pos    token.Position
	// line is the source text of the declaring line, if known.
	line string
}

// First returns the slot delegated to by Pos.
func (t *Type) First() Slot {
	return t.Slots[0]
}

// Last returns the slot delegated to by End.
func (t *Type) Last() Slot {
	return t.Slots[len(t.Slots)-1]
}

// Receiver returns the receiver type expression for methods of t,
// e.g., "Pair[K, V]".
func (t *Type) Receiver() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	names := make([]string, 0, len(t.Params))
	for _, p := range t.Params {
		names = append(names, p.Name)
	}
	return t.Name + "[" + strings.Join(names, ", ") + "]"
}

// A Package is a set of types sharing a Go package.
type Package struct {
	Name  string
	Types []*Type
}

// Lookup returns the type named name or nil.
func (p *Package) Lookup(name string) *Type {
	for _, t := range p.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

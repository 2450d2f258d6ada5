// Package calc declares the syntax tree of a small expression language
// whose positions are derived by spangen.
package calc

//go:generate go run ../../cmd/spangen

import "github.com/brimdata/span"

// Expr is the interface implemented by all expression nodes.
//
//span:derive
type Expr interface {
	span.Node
	exprNode()
}

type (
	// Num is a numeric literal.
	Num struct {
		Kind string            `json:"kind" span:"-"`
		Lit  span.Span[string] `json:"lit"`
	}
	Ident struct {
		Name span.Span[string] `json:"name"`
	}
	// Unary is a prefix operator applied to an operand, e.g., -x.
	Unary struct {
		Op      span.Index[byte] `json:"op"`
		Operand span.Box[Expr]   `json:"operand"`
	}
	Binary struct {
		LHS span.Box[Expr]     `json:"lhs"`
		Op  span.Index[string] `json:"op"`
		RHS span.Box[Expr]     `json:"rhs"`
	}
	Paren struct {
		Open  span.Index[byte] `json:"open"`
		X     span.Box[Expr]   `json:"x"`
		Close span.Index[byte] `json:"close"`
	}
	// Call is a function applied to one or more argument lists, e.g.,
	// f(a)(b, c).
	Call struct {
		span.Appended[Ident, Args]
	}
)

// Args is a parenthesized argument list.
type Args = span.Tuple3[span.Index[byte], []Expr, span.Index[byte]]

func (*Num) exprNode()    {}
func (*Ident) exprNode()  {}
func (*Unary) exprNode()  {}
func (*Binary) exprNode() {}
func (*Paren) exprNode()  {}
func (*Call) exprNode()   {}

// Let binds a name to a value, e.g., let x = 1.
//
//span:derive
type Let struct {
	Keyword span.Span[string] `json:"keyword"`
	Name    Ident             `json:"name"`
	Assign  span.Index[byte]  `json:"assign"`
	Value   Expr              `json:"value"`
}

// Block is a braced sequence of bindings.  Each brace is known only by
// the side of the block it bounds.
//
//span:derive
type Block struct {
	Open  span.Start[byte] `json:"open"`
	Lets  []Let            `json:"lets"`
	Close span.End[byte]   `json:"close"`
}

// List is a bracketed list of elements, e.g., [a, b].
//
//span:derive
type List[T span.Node] struct {
	Open  span.Index[byte] `json:"open"`
	Elems []T              `json:"elems"`
	Close span.Index[byte] `json:"close"`
}

// A Program is a sequence of bindings optionally preceded by a
// declaration of the language version.
type Program = span.Prefix[span.Span[string], span.Prepended[Let, span.Offset]]

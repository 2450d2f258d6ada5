// Package span provides position tracking for syntax-tree and token nodes.
//
// A node reports where it begins with Pos and where it ends with End, as
// offsets into a flat token or character stream.  End is exclusive, so
// End() - Pos() is the length a node covers.  The two capabilities are
// separate interfaces since a parser often learns where a node starts
// well before it learns where the node ends.
//
// The wrapper types in this package attach positions to arbitrary
// payloads (Start, End, Index, Span) and compose already-positioned
// values (Prefix, Postfix, Prepended, Appended, the tuples, and Box).
// Every composite answers Pos and End by delegating to the constituent
// that comes first or last, so a tree assembled from these pieces
// reports the extent of any subtree without storing it twice.
// The spangen command writes the same delegation for plain structs.
package span

import "cmp"

// Started is implemented by values that know the offset at which they begin.
type Started interface {
	Pos() int // Position of first character belonging to the node.
}

// Ended is implemented by values that know the offset just past their end.
type Ended interface {
	End() int // Position of first character immediately after the node.
}

// Node is implemented by values that know both of their bounds.
type Node interface {
	Started
	Ended
}

// Loc is an explicit [First, Last) pair of offsets.
type Loc struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

func NewLoc(pos, end int) Loc {
	return Loc{pos, end}
}

func (l Loc) Pos() int { return l.First }
func (l Loc) End() int { return l.Last }

// Offset is a bare offset used as a zero-width position.  It is its own
// start and its own end.
type Offset int

func (o Offset) Pos() int { return int(o) }
func (o Offset) End() int { return int(o) }

// LocOf returns the extent of n.
func LocOf(n Node) Loc {
	return Loc{n.Pos(), n.End()}
}

// Len returns the number of offsets covered by n.
func Len(n Node) int {
	return n.End() - n.Pos()
}

// Compare orders nodes by starting offset and then by ending offset.
// It returns -1, 0, or +1 in the manner of cmp.Compare.
func Compare(a, b Node) int {
	if c := cmp.Compare(a.Pos(), b.Pos()); c != 0 {
		return c
	}
	return cmp.Compare(a.End(), b.End())
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Node) bool {
	return outer.Pos() <= inner.Pos() && inner.End() <= outer.End()
}

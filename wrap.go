package span

// Start pairs an explicit starting offset with a payload.  A Start knows
// only where it begins; use StartNode when the payload supplies the end.
type Start[I any] struct {
	Inner I   `json:"inner"`
	First int `json:"first"`
}

func NewStart[I any](inner I, pos int) Start[I] {
	return Start[I]{Inner: inner, First: pos}
}

func (s Start[I]) Pos() int { return s.First }

// StartNode is a Start whose end is delegated to its payload.
type StartNode[I Ended] struct {
	Inner I   `json:"inner"`
	First int `json:"first"`
}

func NewStartNode[I Ended](inner I, pos int) StartNode[I] {
	return StartNode[I]{Inner: inner, First: pos}
}

func (s StartNode[I]) Pos() int { return s.First }
func (s StartNode[I]) End() int { return s.Inner.End() }

// End pairs an explicit ending offset with a payload.  An End knows only
// where it ends; use EndNode when the payload supplies the start.
type End[I any] struct {
	Inner I   `json:"inner"`
	Last  int `json:"last"`
}

func NewEnd[I any](inner I, end int) End[I] {
	return End[I]{Inner: inner, Last: end}
}

func (e End[I]) End() int { return e.Last }

// EndNode is an End whose start is delegated to its payload.
type EndNode[I Started] struct {
	Inner I   `json:"inner"`
	Last  int `json:"last"`
}

func NewEndNode[I Started](inner I, end int) EndNode[I] {
	return EndNode[I]{Inner: inner, Last: end}
}

func (e EndNode[I]) Pos() int { return e.Inner.Pos() }
func (e EndNode[I]) End() int { return e.Last }

// Index is a single token at offset Index.  The token covers exactly one
// position.  Inner carries the token's content.
type Index[I any] struct {
	Inner I   `json:"inner"`
	Index int `json:"index"`
}

func NewIndex[I any](inner I, index int) Index[I] {
	return Index[I]{Inner: inner, Index: index}
}

func (i Index[I]) Pos() int { return i.Index }
func (i Index[I]) End() int { return i.Index + 1 }

// Span is a payload whose extent is fully known.  Both bounds are stored
// in the embedded Loc.
type Span[T any] struct {
	Inner T `json:"inner"`
	Loc     `json:"loc"`
}

func NewSpan[T any](inner T, pos, end int) Span[T] {
	return Span[T]{Inner: inner, Loc: Loc{pos, end}}
}

// Extra attaches auxiliary data to a node.  Extra takes no part in
// positioning.
type Extra[T Node, E any] struct {
	Inner T `json:"inner"`
	Extra E `json:"extra"`
}

func WithExtra[T Node, E any](inner T, extra E) Extra[T, E] {
	return Extra[T, E]{Inner: inner, Extra: extra}
}

func (x Extra[T, E]) Pos() int { return x.Inner.Pos() }
func (x Extra[T, E]) End() int { return x.Inner.End() }

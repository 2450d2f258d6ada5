package span

// The tuples are fixed-size groups of heterogeneous elements.  A tuple
// starts where its first element starts and ends where its last element
// ends.  The elements in between contribute nothing to its position.

type Tuple1[A Node] struct {
	First A `json:"first"`
}

func (t Tuple1[A]) Pos() int { return t.First.Pos() }
func (t Tuple1[A]) End() int { return t.First.End() }

type Tuple2[A Started, B Ended] struct {
	First  A `json:"first"`
	Second B `json:"second"`
}

func (t Tuple2[A, B]) Pos() int { return t.First.Pos() }
func (t Tuple2[A, B]) End() int { return t.Second.End() }

type Tuple3[A Started, B any, C Ended] struct {
	First  A `json:"first"`
	Second B `json:"second"`
	Third  C `json:"third"`
}

func (t Tuple3[A, B, C]) Pos() int { return t.First.Pos() }
func (t Tuple3[A, B, C]) End() int { return t.Third.End() }

type Tuple4[A Started, B, C any, D Ended] struct {
	First  A `json:"first"`
	Second B `json:"second"`
	Third  C `json:"third"`
	Fourth D `json:"fourth"`
}

func (t Tuple4[A, B, C, D]) Pos() int { return t.First.Pos() }
func (t Tuple4[A, B, C, D]) End() int { return t.Fourth.End() }

type Tuple5[A Started, B, C, D any, E Ended] struct {
	First  A `json:"first"`
	Second B `json:"second"`
	Third  C `json:"third"`
	Fourth D `json:"fourth"`
	Fifth  E `json:"fifth"`
}

func (t Tuple5[A, B, C, D, E]) Pos() int { return t.First.Pos() }
func (t Tuple5[A, B, C, D, E]) End() int { return t.Fifth.End() }

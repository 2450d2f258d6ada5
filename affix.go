package span

// Prefix is an optional leading element followed by a required one.
// A nil Prefix is absent.
type Prefix[A Started, B Node] struct {
	Prefix *A `json:"prefix"`
	Inner  B  `json:"inner"`
}

func (p Prefix[A, B]) Pos() int {
	if p.Prefix != nil {
		return (*p.Prefix).Pos()
	}
	return p.Inner.Pos()
}

func (p Prefix[A, B]) End() int { return p.Inner.End() }

// Postfix is a required element followed by an optional trailing one.
// A nil Postfix is absent.
type Postfix[A Node, B Ended] struct {
	Inner   A  `json:"inner"`
	Postfix *B `json:"postfix"`
}

func (p Postfix[A, B]) Pos() int { return p.Inner.Pos() }

func (p Postfix[A, B]) End() int {
	if p.Postfix != nil {
		return (*p.Postfix).End()
	}
	return p.Inner.End()
}

// Prepended is zero or more leading elements followed by exactly one
// trailing element, e.g., the attributes and then the name of a
// declaration.
type Prepended[A Started, B Node] struct {
	Precedings []A `json:"precedings"`
	Last       B   `json:"last"`
}

func (p Prepended[A, B]) Pos() int {
	if len(p.Precedings) == 0 {
		return p.Last.Pos()
	}
	return p.Precedings[0].Pos()
}

func (p Prepended[A, B]) End() int { return p.Last.End() }

// Appended is exactly one leading element followed by zero or more
// trailing elements, e.g., a call target and then its argument lists.
type Appended[A Node, B Ended] struct {
	First      A   `json:"first"`
	Followings []B `json:"followings"`
}

func (a Appended[A, B]) Pos() int { return a.First.Pos() }

func (a Appended[A, B]) End() int {
	if len(a.Followings) == 0 {
		return a.First.End()
	}
	return a.Followings[len(a.Followings)-1].End()
}

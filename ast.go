package regen

// NodeType identifies the type of AST node.
type NodeType int

const (
	NodeLiteral NodeType = iota
	NodeConcat
	NodeAlternate
	NodeQuantifier
	NodeCapture
	NodeAssertion
	NodeLookaround
	NodeCharClass
	NodeBackreference
)

// Node is the base interface for AST nodes. The tree is built once by the
// parser (or by hand) and is read-only thereafter; it may be shared across
// any number of enumerations.
type Node interface {
	Type() NodeType
}

// Literal is a single code point from the inclusive range [Lo, Hi].
// With Negated set it stands for the complement of the range within the
// printable background alphabet instead.
type Literal struct {
	Lo, Hi  rune
	Negated bool
}

func (n *Literal) Type() NodeType { return NodeLiteral }

// Concat is a sequence of nodes, each contributing one value.
type Concat struct {
	Nodes []Node
}

func (n *Concat) Type() NodeType { return NodeConcat }

// Alternate is one of several branches.
type Alternate struct {
	Nodes []Node
}

func (n *Alternate) Type() NodeType { return NodeAlternate }

// Quantifier repeats its body Min..Max times.
type Quantifier struct {
	Body   Node
	Min    int
	Max    int // -1 for infinity
	Greedy bool
}

func (n *Quantifier) Type() NodeType { return NodeQuantifier }

// Capture is a capturing group. Indexes are unique, assigned left-to-right
// at parse time.
type Capture struct {
	Body  Node
	Index int    // 1-based index
	Name  string // Optional name
}

func (n *Capture) Type() NodeType { return NodeCapture }

// AssertionType distinguishes the zero-width assertions.
type AssertionType int

const (
	AssertStartText       AssertionType = iota // ^
	AssertEndText                              // $
	AssertWordBoundary                         // \b
	AssertNotWordBoundary                      // \B
)

// Assertion matches a position without consuming characters.
type Assertion struct {
	Kind AssertionType
}

func (n *Assertion) Type() NodeType { return NodeAssertion }

// Lookaround is a zero-width assertion that wraps a pattern.
type Lookaround struct {
	Body     Node
	Negative bool // True for (?!...) and (?<!...)
	Behind   bool // True for (?<=...) and (?<!...)
}

func (n *Lookaround) Type() NodeType { return NodeLookaround }

// CharClass represents [a-z0-9] or [^a-z]. Members keep declaration order;
// a negated class negates each member individually rather than the
// aggregate, so overlapping members may repeat values.
type CharClass struct {
	Members []*Literal
	Negated bool
}

func (n *CharClass) Type() NodeType { return NodeCharClass }

// Backreference refers to a captured group. It may appear before the group
// it references.
type Backreference struct {
	Index int    // 1-based index of the capture group
	Name  string // Optional name, for \k<name>
}

func (n *Backreference) Type() NodeType { return NodeBackreference }

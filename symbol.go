package regen

// The background alphabet for negation: the printable ASCII window.
// Enumerating the complement of a range outside this window is not
// supported.
const (
	printableMin = ' '
	printableMax = '~'
)

// symbolGen enumerates the one-character strings of a literal range in
// ascending code-point order. In negative mode it enumerates the printable
// characters outside the range instead.
type symbolGen struct {
	node     *Literal
	negative bool
	r        rune
	done     bool
}

// newSymbolGen builds the symbol source for a leaf. The negative argument
// flips the member when its enclosing class is negated; a leaf that is
// itself negated flips back ([^\D] is the digits).
func newSymbolGen(n *Literal, negative bool) *symbolGen {
	g := &symbolGen{node: n, negative: negative != n.Negated}
	if g.negative {
		g.r = printableMin
	} else {
		g.r = n.Lo
	}
	return g
}

func (g *symbolGen) next() (*Result, bool) {
	for !g.done {
		r := g.r
		g.r++
		if g.negative {
			if r > printableMax {
				break
			}
			if r >= g.node.Lo && r <= g.node.Hi {
				continue
			}
		} else if r > g.node.Hi {
			break
		}
		return &Result{Str: string(r), Node: g.node}, true
	}
	g.done = true
	return nil, false
}

// classGen concatenates the symbol sources of a class's members in
// declaration order. It is concatenation, not set union: overlapping
// members repeat their shared values. For a negated class each member's
// source runs in negative mode; the aggregate is never complemented.
type classGen struct {
	node *CharClass
	i    int
	cur  *symbolGen
	done bool
}

func (g *classGen) next() (*Result, bool) {
	for !g.done {
		if g.cur == nil {
			if g.i >= len(g.node.Members) {
				break
			}
			g.cur = newSymbolGen(g.node.Members[g.i], g.node.Negated)
			g.i++
		}
		v, ok := g.cur.next()
		if !ok {
			g.cur = nil
			continue
		}
		return &Result{Str: v.Str, Node: g.node, Parts: []*Result{v}}, true
	}
	g.done = true
	return nil, false
}

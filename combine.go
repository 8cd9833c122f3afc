package regen

import "strings"

// concatGen combines the generators of a concatenation's children into the
// full cross product of their outputs without knowing any child's length
// in advance.
//
// It keeps every value already drawn from each child (memo) and a cursor
// per child, and walks the product as a mixed-radix odometer: the
// rightmost cursor advances fastest; a cursor that runs off the end of its
// memo pulls exactly one more value from that child and extends the memo,
// so a child's nth value is requested at most once; a child that cannot
// supply another value wraps its cursor to the start of the memo and the
// advance carries one position left, replaying the earlier values against
// the neighbour's new one.
//
// A child that never exhausts therefore absorbs the advance forever and
// pins every child to its left. That ordering bias is part of the
// contract; reordering it would change the emitted sequence.
type concatGen struct {
	node     Node
	children []generator
	memo     [][]*Result
	idx      []int
	started  bool
	done     bool
}

func newConcatGen(node Node, children []generator) *concatGen {
	return &concatGen{
		node:     node,
		children: children,
		memo:     make([][]*Result, len(children)),
		idx:      make([]int, len(children)),
	}
}

func (g *concatGen) next() (*Result, bool) {
	if g.done {
		return nil, false
	}
	if !g.started {
		g.started = true
		// Seed the product with one value from every child. Any child
		// with an empty sequence empties the whole product. A childless
		// concatenation degenerates to the single empty string.
		for i, c := range g.children {
			v, ok := c.next()
			if !ok {
				g.done = true
				return nil, false
			}
			g.memo[i] = append(g.memo[i], v)
		}
		return g.emit(), true
	}
	if !g.advance() {
		g.done = true
		return nil, false
	}
	return g.emit(), true
}

func (g *concatGen) advance() bool {
	for i := len(g.children) - 1; i >= 0; i-- {
		g.idx[i]++
		if g.idx[i] < len(g.memo[i]) {
			return true
		}
		if v, ok := g.children[i].next(); ok {
			g.memo[i] = append(g.memo[i], v)
			return true
		}
		g.idx[i] = 0 // exhausted: replay from the start, carry left
	}
	return false
}

func (g *concatGen) emit() *Result {
	parts := make([]*Result, len(g.children))
	var sb strings.Builder
	for i, m := range g.memo {
		v := m[g.idx[i]]
		parts[i] = v
		sb.WriteString(v.Str)
	}
	return &Result{Str: sb.String(), Node: g.node, Parts: parts}
}

// alternateGen drains each branch in turn, left to right. A branch that
// never exhausts keeps later branches from being reached.
type alternateGen struct {
	node     *Alternate
	children []generator
	i        int
}

func (g *alternateGen) next() (*Result, bool) {
	for g.i < len(g.children) {
		if v, ok := g.children[g.i].next(); ok {
			return &Result{Str: v.Str, Node: g.node, Parts: []*Result{v}}, true
		}
		g.i++
	}
	return nil, false
}

package regen

import "strings"

// repeatGen expands a quantifier. For each count n from Min to Max in
// increasing order it emits every string formed by concatenating n values
// drawn from the body, before moving on to n+1.
//
// All counts share one body generator: the values drawn so far form a
// growing alphabet, and for a fixed n the index tuple over that alphabet
// advances like the concatGen odometer — rightmost position fastest,
// extending the alphabet by one pull whenever an index would run past it,
// carrying left once the body is exhausted. Min of zero emits the empty
// string first. Max of -1 never terminates on its own; the caller bounds
// consumption.
type repeatGen struct {
	node      *Quantifier
	child     generator
	alphabet  []*Result
	idx       []int
	count     int
	inCount   bool
	exhausted bool // body generator ran dry
	done      bool
}

func (g *repeatGen) next() (*Result, bool) {
	if g.done {
		return nil, false
	}
	for {
		if !g.inCount {
			if v, ok := g.enter(); ok {
				return v, true
			}
			return nil, false
		}
		if g.advance() {
			return g.emit(), true
		}
		// Current count exhausted; escalate.
		if g.node.Max >= 0 && g.count >= g.node.Max {
			g.done = true
			return nil, false
		}
		g.count++
		g.inCount = false
	}
}

// enter starts the current repeat count, emitting its first tuple.
func (g *repeatGen) enter() (*Result, bool) {
	if g.count == 0 {
		g.inCount = true
		g.idx = nil
		return &Result{Node: g.node}, true
	}
	if len(g.alphabet) == 0 && !g.pull() {
		// Body has no productions at all; no positive count is
		// satisfiable.
		g.done = true
		return nil, false
	}
	g.idx = make([]int, g.count)
	g.inCount = true
	return g.emit(), true
}

func (g *repeatGen) advance() bool {
	for i := g.count - 1; i >= 0; i-- {
		g.idx[i]++
		if g.idx[i] < len(g.alphabet) {
			return true
		}
		if g.pull() {
			return true
		}
		g.idx[i] = 0
	}
	return false
}

func (g *repeatGen) pull() bool {
	if g.exhausted {
		return false
	}
	v, ok := g.child.next()
	if !ok {
		g.exhausted = true
		return false
	}
	g.alphabet = append(g.alphabet, v)
	return true
}

func (g *repeatGen) emit() *Result {
	parts := make([]*Result, g.count)
	var sb strings.Builder
	for i, j := range g.idx {
		v := g.alphabet[j]
		parts[i] = v
		sb.WriteString(v.Str)
	}
	return &Result{Str: sb.String(), Node: g.node, Parts: parts}
}

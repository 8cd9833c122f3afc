package regen

import "strings"

// placeholderBase is the first rune of the private-use window that stands
// in for unresolved backreferences while a value is being assembled. Group
// n's placeholder is the single rune placeholderBase+n.
const placeholderBase = '\uE000'

func placeholder(index int) string {
	return string(placeholderBase + rune(index))
}

// context carries the mutable capture state of one enumeration. groups
// maps a capturing group's number to the last value drawn from its
// subtree; backreferences maps a group number to the value actually
// substituted for its placeholder, if any. A context lives for exactly one
// enumeration and is discarded when the caller stops pulling.
type context struct {
	groups         map[int]string
	backreferences map[int]string
	numCaps        int
}

func newContext(numCaps int) *context {
	return &context{
		groups:         make(map[int]string),
		backreferences: make(map[int]string),
		numCaps:        numCaps,
	}
}

// captureGen records each value drawn from a capturing group's subtree as
// a side effect of the draw. Values replayed out of a combinator's memo do
// not re-record, so the recorded value is always the most recent actual
// draw.
type captureGen struct {
	node  *Capture
	child generator
	ctx   *context
}

func (g *captureGen) next() (*Result, bool) {
	v, ok := g.child.next()
	if !ok {
		return nil, false
	}
	g.ctx.groups[g.node.Index] = v.Str
	return &Result{Str: v.Str, Node: g.node, Parts: []*Result{v}}, true
}

// backrefGen yields a single opaque placeholder token rather than real
// text: the referenced group's value for the combination being assembled
// may not be final at draw time. The substitution pass splices in the real
// text once the top-level value is complete.
type backrefGen struct {
	node *Backreference
	done bool
}

func (g *backrefGen) next() (*Result, bool) {
	if g.done {
		return nil, false
	}
	g.done = true
	return &Result{Str: placeholder(g.node.Index), Node: g.node}, true
}

// resolve is the substitution pass run over each fully assembled top-level
// value. A placeholder whose group has a recorded value is replaced by it
// and the substitution recorded; a placeholder whose group never produced
// a value is stripped to the empty string. Recorded values can themselves
// contain placeholders from nested groups, so expansion recurses; a group
// already being expanded strips instead of recursing into itself.
func (c *context) resolve(s string) string {
	if c.numCaps == 0 {
		return s
	}
	return c.expand(s, make(map[int]bool))
}

func (c *context) expand(s string, busy map[int]bool) string {
	var out strings.Builder
	for _, r := range s {
		if r < placeholderBase || r > placeholderBase+rune(c.numCaps) {
			out.WriteRune(r)
			continue
		}
		idx := int(r - placeholderBase)
		val, ok := c.groups[idx]
		if !ok || busy[idx] {
			continue
		}
		busy[idx] = true
		expanded := c.expand(val, busy)
		delete(busy, idx)
		c.backreferences[idx] = expanded
		out.WriteString(expanded)
	}
	return out.String()
}

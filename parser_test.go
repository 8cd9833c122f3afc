package regen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, pattern string) Node {
	t.Helper()
	node, err := NewParser(pattern).Parse()
	require.NoError(t, err, "pattern %q", pattern)
	return node
}

func TestParseLiteralRanges(t *testing.T) {
	node := mustParse(t, "a")
	lit, ok := node.(*Literal)
	require.True(t, ok)
	assert.Equal(t, 'a', lit.Lo)
	assert.Equal(t, 'a', lit.Hi)
	assert.False(t, lit.Negated)

	node = mustParse(t, ".")
	lit = node.(*Literal)
	assert.Equal(t, ' ', lit.Lo)
	assert.Equal(t, '~', lit.Hi)
}

func TestParseConcatAndAlternate(t *testing.T) {
	node := mustParse(t, "ab")
	cat, ok := node.(*Concat)
	require.True(t, ok)
	assert.Len(t, cat.Nodes, 2)

	// Alternates flatten: a|b|c is one node with three branches.
	node = mustParse(t, "a|b|c")
	alt, ok := node.(*Alternate)
	require.True(t, ok)
	assert.Len(t, alt.Nodes, 3)
}

func TestParseQuantifierBounds(t *testing.T) {
	tests := []struct {
		pattern  string
		min, max int
		greedy   bool
	}{
		{"a*", 0, -1, true},
		{"a+", 1, -1, true},
		{"a?", 0, 1, true},
		{"a*?", 0, -1, false},
		{"a{3}", 3, 3, true},
		{"a{2,}", 2, -1, true},
		{"a{2,5}", 2, 5, true},
		{"a{2,5}?", 2, 5, false},
	}
	for _, tc := range tests {
		node := mustParse(t, tc.pattern)
		q, ok := node.(*Quantifier)
		require.True(t, ok, "pattern %q", tc.pattern)
		assert.Equal(t, tc.min, q.Min, "pattern %q", tc.pattern)
		assert.Equal(t, tc.max, q.Max, "pattern %q", tc.pattern)
		assert.Equal(t, tc.greedy, q.Greedy, "pattern %q", tc.pattern)
	}
}

func TestParseCharClassMembers(t *testing.T) {
	node := mustParse(t, "[a-z0-9_]")
	cc, ok := node.(*CharClass)
	require.True(t, ok)
	require.Len(t, cc.Members, 3)
	assert.Equal(t, &Literal{Lo: 'a', Hi: 'z'}, cc.Members[0])
	assert.Equal(t, &Literal{Lo: '0', Hi: '9'}, cc.Members[1])
	assert.Equal(t, &Literal{Lo: '_', Hi: '_'}, cc.Members[2])
	assert.False(t, cc.Negated)

	node = mustParse(t, "[^x]")
	cc = node.(*CharClass)
	assert.True(t, cc.Negated)
	require.Len(t, cc.Members, 1)
	assert.False(t, cc.Members[0].Negated)

	// Leading ] is a literal member.
	node = mustParse(t, "[]a]")
	cc = node.(*CharClass)
	require.Len(t, cc.Members, 2)
	assert.Equal(t, ']', cc.Members[0].Lo)

	// \D inside a class arrives as a negated member.
	node = mustParse(t, "[\\D]")
	cc = node.(*CharClass)
	require.Len(t, cc.Members, 1)
	assert.True(t, cc.Members[0].Negated)
}

func TestParseGroups(t *testing.T) {
	node := mustParse(t, "(a)(b)")
	cat := node.(*Concat)
	g1 := cat.Nodes[0].(*Capture)
	g2 := cat.Nodes[1].(*Capture)
	assert.Equal(t, 1, g1.Index)
	assert.Equal(t, 2, g2.Index)

	// Non-capturing groups disappear from the tree.
	node = mustParse(t, "(?:ab)")
	_, ok := node.(*Concat)
	assert.True(t, ok)

	node = mustParse(t, "(?P<word>a)")
	g := node.(*Capture)
	assert.Equal(t, "word", g.Name)
	assert.Equal(t, 1, g.Index)
}

func TestParseBackreferences(t *testing.T) {
	node := mustParse(t, "(a)\\1")
	cat := node.(*Concat)
	ref, ok := cat.Nodes[1].(*Backreference)
	require.True(t, ok)
	assert.Equal(t, 1, ref.Index)

	node = mustParse(t, "(?P<x>a)\\k<x>")
	cat = node.(*Concat)
	ref = cat.Nodes[1].(*Backreference)
	assert.Equal(t, 1, ref.Index)
	assert.Equal(t, "x", ref.Name)

	// Multi-digit indexes parse greedily.
	p := NewParser("\\12")
	node, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, 12, node.(*Backreference).Index)
}

func TestParseAssertionsAndLookaround(t *testing.T) {
	node := mustParse(t, "^a$")
	cat := node.(*Concat)
	assert.Equal(t, AssertStartText, cat.Nodes[0].(*Assertion).Kind)
	assert.Equal(t, AssertEndText, cat.Nodes[2].(*Assertion).Kind)

	node = mustParse(t, "(?<!x)")
	la := node.(*Lookaround)
	assert.True(t, la.Negative)
	assert.True(t, la.Behind)
}

func TestParseEscapeClasses(t *testing.T) {
	node := mustParse(t, "\\w")
	cc := node.(*CharClass)
	assert.Len(t, cc.Members, 4)
	assert.False(t, cc.Negated)

	node = mustParse(t, "\\S")
	cc = node.(*CharClass)
	assert.True(t, cc.Negated)
}

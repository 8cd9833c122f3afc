package regen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubexpAccessors(t *testing.T) {
	re := MustCompile("(a)(?P<mid>b)(?:c)(d)")
	assert.Equal(t, 3, re.NumSubexp())
	assert.Equal(t, []string{"", "", "mid", ""}, re.SubexpNames())
	assert.Equal(t, 2, re.SubexpIndex("mid"))
	assert.Equal(t, -1, re.SubexpIndex("nope"))
	assert.Equal(t, "(a)(?P<mid>b)(?:c)(d)", re.String())
}

func TestTreeAccessor(t *testing.T) {
	re := MustCompile("a|b")
	require.NotNil(t, re.Tree())
	assert.Equal(t, NodeAlternate, re.Tree().Type())
}

// TestMatchesEarlyBreak checks that ranging over Matches and breaking
// early bounds an infinite pattern.
func TestMatchesEarlyBreak(t *testing.T) {
	re := MustCompile("(a|b)+")
	var got []string
	for m := range re.Matches() {
		got = append(got, m.Value)
		if len(got) == 5 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b", "aa", "ab", "ba"}, got)
}

// TestMatchesIndependent checks that two ranges over the same Regexp are
// independent enumerations.
func TestMatchesIndependent(t *testing.T) {
	re := MustCompile("(x|y)\\1")
	var first, second []string
	for m := range re.Matches() {
		first = append(first, m.Value)
	}
	for m := range re.Matches() {
		second = append(second, m.Value)
	}
	assert.Equal(t, []string{"xx", "yy"}, first)
	assert.Equal(t, first, second)
}

// TestEnumerateTreeDirectly checks the package-level driver over a
// hand-built Pattern tree.
func TestEnumerateTreeDirectly(t *testing.T) {
	tree := &Concat{Nodes: []Node{
		&Alternate{Nodes: []Node{
			&Literal{Lo: 'a', Hi: 'a'},
			&Literal{Lo: 'b', Hi: 'b'},
		}},
		&Quantifier{Body: &Literal{Lo: 'x', Hi: 'x'}, Min: 1, Max: 2, Greedy: true},
	}}
	out, err := Enumerate(tree, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ax", "axx", "bx", "bxx"}, out)
}

// TestEnumerateNilTree checks the degenerate empty tree.
func TestEnumerateNilTree(t *testing.T) {
	out, err := Enumerate(nil, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, out)
}

// TestEnumerateSharedTree checks that one tree can back several
// independent enumerations.
func TestEnumerateSharedTree(t *testing.T) {
	tree := &Alternate{Nodes: []Node{
		&Literal{Lo: '0', Hi: '2'},
		&Literal{Lo: 'x', Hi: 'x'},
	}}
	for i := 0; i < 3; i++ {
		out, err := Enumerate(tree, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1", "2", "x"}, out)
	}
}

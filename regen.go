package regen

import (
	"fmt"
	"iter"
)

// Regexp is a parsed pattern ready for enumeration. The tree inside is
// read-only, so a Regexp may be shared freely; every enumeration runs with
// its own context and generator state.
type Regexp struct {
	expr        string
	root        Node
	numCaps     int
	subexpNames []string
}

func Compile(expr string) (*Regexp, error) {
	parser := NewParser(expr)
	node, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	if _, err := validate(node); err != nil {
		return nil, err
	}

	// Build subexp names from parser
	names := make([]string, parser.captures+1)
	for name, idx := range parser.names {
		if idx < len(names) {
			names[idx] = name
		}
	}

	return &Regexp{
		expr:        expr,
		root:        node,
		numCaps:     parser.captures,
		subexpNames: names,
	}, nil
}

func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("regen: Compile(%q): %v", expr, err))
	}
	return re
}

// NumSubexp returns the number of parenthesized subexpressions in this Regexp.
func (re *Regexp) NumSubexp() int {
	return len(re.subexpNames) - 1
}

// SubexpNames returns the names of the parenthesized subexpressions
// in this Regexp. The first element is the full match (unnamed).
func (re *Regexp) SubexpNames() []string {
	return re.subexpNames
}

// SubexpIndex returns the index of the first subexpression with the given name,
// or -1 if there is no subexpression with that name.
func (re *Regexp) SubexpIndex(name string) int {
	for i, n := range re.subexpNames {
		if n == name {
			return i
		}
	}
	return -1
}

// String returns the source text used to compile the regular expression.
func (re *Regexp) String() string {
	return re.expr
}

// Tree returns the root of the parsed Pattern tree.
func (re *Regexp) Tree() Node {
	return re.root
}

// Match is one enumerated value. Value has backreference placeholders
// resolved; Trace is the provenance tree mirroring the Pattern tree, with
// placeholders left raw.
type Match struct {
	Value string
	Trace *Result
}

// Matches returns an iterator over the distinct strings the pattern can
// match, in enumeration order. Each range over the sequence is an
// independent enumeration with a fresh context. Nothing is computed ahead
// of the pull, so breaking out of the range is how a pattern with
// infinitely many matches is bounded.
func (re *Regexp) Matches() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		ctx := newContext(re.numCaps)
		root, err := build(re.root, ctx)
		if err != nil {
			// Compile already validated the tree.
			return
		}
		for {
			v, ok := root.next()
			if !ok {
				return
			}
			if !yield(Match{Value: ctx.resolve(v.Str), Trace: v}) {
				return
			}
		}
	}
}

// Enumerate pulls up to limit values from a fresh enumeration of the
// pattern. limit < 0 means unbounded, which only terminates for patterns
// with a finite match set.
func (re *Regexp) Enumerate(limit int) []string {
	if limit == 0 {
		return nil
	}
	var out []string
	for m := range re.Matches() {
		out = append(out, m.Value)
		if limit >= 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// EnumerateMatches is Enumerate with provenance attached to each value.
func (re *Regexp) EnumerateMatches(limit int) []Match {
	if limit == 0 {
		return nil
	}
	var out []Match
	for m := range re.Matches() {
		out = append(out, m)
		if limit >= 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Enumerate enumerates a caller-supplied Pattern tree, pulling up to limit
// values (limit < 0 means unbounded). The tree is validated up front: a
// StructuralError is returned before any value is produced, never
// mid-stream. A nil tree is the empty pattern and yields one empty string.
func Enumerate(root Node, limit int) ([]string, error) {
	numCaps, err := validate(root)
	if err != nil {
		return nil, err
	}
	ctx := newContext(numCaps)
	gen, err := build(root, ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for limit < 0 || len(out) < limit {
		v, ok := gen.next()
		if !ok {
			break
		}
		out = append(out, ctx.resolve(v.Str))
	}
	return out, nil
}

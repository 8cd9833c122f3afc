package regen

// Result is one produced value plus its provenance: the node that produced
// it and the child values it was assembled from. The provenance tree
// shadows the Pattern tree and is emitted for visualization consumers; the
// engine itself never reads it back. Backreference results carry their raw
// placeholder text.
type Result struct {
	Str   string
	Node  Node
	Parts []*Result
}

// generator is the pull contract every node's enumerator implements: next
// returns the subtree's next produced value, or ok=false once the sequence
// is exhausted. Exhaustion is sticky; next keeps reporting false once it
// has. Generators own private state scoped to a single enumeration and
// must not be shared between two enumerations of the same tree.
type generator interface {
	next() (*Result, bool)
}

// build constructs the generator tree for node, bottom-up. It assumes the
// tree already passed validate, so the default arm is only reachable for
// trees handed in without validation.
func build(node Node, ctx *context) (generator, error) {
	switch n := node.(type) {
	case nil:
		return newConcatGen(&Concat{}, nil), nil
	case *Literal:
		return newSymbolGen(n, false), nil
	case *CharClass:
		return &classGen{node: n}, nil
	case *Concat:
		children, err := buildAll(n.Nodes, ctx)
		if err != nil {
			return nil, err
		}
		return newConcatGen(n, children), nil
	case *Alternate:
		children, err := buildAll(n.Nodes, ctx)
		if err != nil {
			return nil, err
		}
		return &alternateGen{node: n, children: children}, nil
	case *Quantifier:
		child, err := build(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		return &repeatGen{node: n, child: child, count: n.Min}, nil
	case *Capture:
		child, err := build(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		return &captureGen{node: n, child: child, ctx: ctx}, nil
	case *Backreference:
		return &backrefGen{node: n}, nil
	case *Assertion:
		return &epsilonGen{node: n}, nil
	case *Lookaround:
		// Zero-width and taken as satisfied; the wrapped pattern is not
		// enumerated.
		return &epsilonGen{node: n}, nil
	default:
		return nil, structuralErrorf("unrecognized node type %T", node)
	}
}

func buildAll(nodes []Node, ctx *context) ([]generator, error) {
	children := make([]generator, len(nodes))
	for i, n := range nodes {
		g, err := build(n, ctx)
		if err != nil {
			return nil, err
		}
		children[i] = g
	}
	return children, nil
}

// validate walks the tree once, before any generator is built, and checks
// for the two structural failure modes: an unrecognized node type and a
// backreference to a group number with no capturing group. It returns the
// highest capture index seen.
func validate(root Node) (int, error) {
	groups := make(map[int]bool)
	var refs []*Backreference
	maxIdx := 0

	var walk func(Node) error
	walk = func(node Node) error {
		switch n := node.(type) {
		case nil:
			return nil
		case *Literal, *Assertion:
			return nil
		case *CharClass:
			return nil
		case *Concat:
			for _, c := range n.Nodes {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		case *Alternate:
			for _, c := range n.Nodes {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		case *Quantifier:
			return walk(n.Body)
		case *Capture:
			groups[n.Index] = true
			if n.Index > maxIdx {
				maxIdx = n.Index
			}
			return walk(n.Body)
		case *Lookaround:
			return walk(n.Body)
		case *Backreference:
			refs = append(refs, n)
			return nil
		default:
			return structuralErrorf("unrecognized node type %T", node)
		}
	}
	if err := walk(root); err != nil {
		return 0, err
	}
	for _, ref := range refs {
		if !groups[ref.Index] {
			if ref.Name != "" {
				return 0, structuralErrorf("backreference to nonexistent group %q", ref.Name)
			}
			return 0, structuralErrorf("backreference to nonexistent group %d", ref.Index)
		}
	}
	return maxIdx, nil
}

// epsilonGen yields a single empty string. Assertions and lookarounds are
// zero-width productions and are not verified against surrounding context.
type epsilonGen struct {
	node Node
	done bool
}

func (g *epsilonGen) next() (*Result, bool) {
	if g.done {
		return nil, false
	}
	g.done = true
	return &Result{Node: g.node}, true
}

package regen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parser parses a regex string into an AST.
type Parser struct {
	input string
	pos   int
	// State for capturing groups
	captures int
	names    map[string]int
	flags    parseFlags
}

type parseFlags struct {
	caseInsensitive bool
}

func NewParser(input string) *Parser {
	return &Parser{
		input: input,
		names: make(map[string]int),
	}
}

func (p *Parser) Parse() (Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, fmt.Errorf("unexpected character at %d: %q", p.pos, p.peek())
	}
	return node, nil
}

// parseExpr handles alternation: term | term
func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.input) && p.peek() == '|' {
		p.consume() // eat |
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		// Flatten nested Alternates so branches stay in declaration order.
		if alt, ok := right.(*Alternate); ok {
			return &Alternate{Nodes: append([]Node{left}, alt.Nodes...)}, nil
		}
		return &Alternate{Nodes: []Node{left, right}}, nil
	}
	return left, nil
}

// parseTerm handles concatenation: factor factor
func (p *Parser) parseTerm() (Node, error) {
	var nodes []Node
	for p.pos < len(p.input) && p.peek() != '|' && p.peek() != ')' {
		node, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &Concat{Nodes: nodes}, nil
}

// parseFactor handles quantifiers: atom*, atom+, atom?, atom{n,m}
func (p *Parser) parseFactor() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.input) {
		return atom, nil
	}

	ch := p.peek()
	switch ch {
	case '*', '+', '?':
		p.consume()
		q := &Quantifier{Body: atom, Greedy: true}
		if ch == '*' {
			q.Min, q.Max = 0, -1
		} else if ch == '+' {
			q.Min, q.Max = 1, -1
		} else {
			q.Min, q.Max = 0, 1
		}
		if p.pos < len(p.input) && p.peek() == '?' {
			p.consume()
			q.Greedy = false
		}
		return q, nil
	case '{':
		p.consume() // eat {

		minStr := ""
		for p.pos < len(p.input) && p.peek() >= '0' && p.peek() <= '9' {
			minStr += string(p.consume())
		}
		if minStr == "" {
			return nil, fmt.Errorf("invalid quantifier: missing number")
		}
		min, err := strconv.Atoi(minStr)
		if err != nil {
			return nil, fmt.Errorf("invalid quantifier: %v", err)
		}

		max := min // Default: exactly n

		if p.pos < len(p.input) && p.peek() == ',' {
			p.consume() // eat ,

			if p.pos < len(p.input) && p.peek() == '}' {
				// {n,} means n or more
				max = -1
			} else {
				maxStr := ""
				for p.pos < len(p.input) && p.peek() >= '0' && p.peek() <= '9' {
					maxStr += string(p.consume())
				}
				if maxStr == "" {
					return nil, fmt.Errorf("invalid quantifier: missing max")
				}
				max, err = strconv.Atoi(maxStr)
				if err != nil {
					return nil, fmt.Errorf("invalid quantifier: %v", err)
				}
			}
		}

		if p.pos >= len(p.input) || p.consume() != '}' {
			return nil, fmt.Errorf("unclosed quantifier")
		}
		if max >= 0 && min > max {
			return nil, fmt.Errorf("invalid quantifier: min %d greater than max %d", min, max)
		}

		q := &Quantifier{Body: atom, Min: min, Max: max, Greedy: true}

		if p.pos < len(p.input) && p.peek() == '?' {
			p.consume()
			q.Greedy = false
		}

		return q, nil
	}
	return atom, nil
}

// parseAtom handles literals, groups, char classes
func (p *Parser) parseAtom() (Node, error) {
	ch := p.peek()
	switch ch {
	case '(':
		p.consume()
		return p.parseGroup()
	case '[':
		p.consume()
		return p.parseCharClass()
	case '.':
		p.consume()
		// Dot stands for any printable character.
		return &Literal{Lo: printableMin, Hi: printableMax}, nil

	case '\\':
		p.consume() // eat \
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("trailing backslash")
		}
		esc := p.consume()
		switch esc {
		// Character classes
		case 'd':
			return &CharClass{Members: digitMembers()}, nil
		case 'D':
			return &CharClass{Members: digitMembers(), Negated: true}, nil
		case 'w':
			return &CharClass{Members: wordMembers()}, nil
		case 'W':
			return &CharClass{Members: wordMembers(), Negated: true}, nil
		case 's':
			return &CharClass{Members: spaceMembers()}, nil
		case 'S':
			return &CharClass{Members: spaceMembers(), Negated: true}, nil

		// Assertions
		case 'b':
			return &Assertion{Kind: AssertWordBoundary}, nil
		case 'B':
			return &Assertion{Kind: AssertNotWordBoundary}, nil

		// Backreferences
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			idx := int(esc - '0')
			for p.pos < len(p.input) && p.peek() >= '0' && p.peek() <= '9' {
				idx = idx*10 + int(p.consume()-'0')
			}
			return &Backreference{Index: idx}, nil
		case 'k':
			return p.parseNamedBackreference()

		// Literal escapes
		case 'n':
			return p.literalNode('\n'), nil
		case 't':
			return p.literalNode('\t'), nil
		case 'r':
			return p.literalNode('\r'), nil
		case 'f':
			return p.literalNode('\f'), nil
		case 'v':
			return p.literalNode('\v'), nil

		default:
			// Escaped metacharacters and anything else: treat as literal
			return p.literalNode(esc), nil
		}
	case '^':
		p.consume()
		return &Assertion{Kind: AssertStartText}, nil
	case '$':
		p.consume()
		return &Assertion{Kind: AssertEndText}, nil
	case '|', ')':
		return nil, fmt.Errorf("unexpected meta char: %c", ch)
	default:
		p.consume()
		return p.literalNode(ch), nil
	}
}

// literalNode builds the node for one literal character. In
// case-insensitive mode a letter widens to a two-member class so the
// engine never has to know about folding.
func (p *Parser) literalNode(r rune) Node {
	if p.flags.caseInsensitive {
		if f, ok := foldRune(r); ok {
			return &CharClass{Members: []*Literal{
				{Lo: r, Hi: r},
				{Lo: f, Hi: f},
			}}
		}
	}
	return &Literal{Lo: r, Hi: r}
}

// foldRune returns the opposite-case form of an ASCII letter.
func foldRune(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 'a' + 'A', true
	case r >= 'A' && r <= 'Z':
		return r - 'A' + 'a', true
	}
	return r, false
}

func digitMembers() []*Literal {
	return []*Literal{{Lo: '0', Hi: '9'}}
}

func wordMembers() []*Literal {
	return []*Literal{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: '_', Hi: '_'}, {Lo: 'a', Hi: 'z'}}
}

func spaceMembers() []*Literal {
	return []*Literal{{Lo: '\t', Hi: '\t'}, {Lo: '\n', Hi: '\n'}, {Lo: '\r', Hi: '\r'}, {Lo: ' ', Hi: ' '}}
}

func (p *Parser) parseNamedBackreference() (Node, error) {
	if p.pos >= len(p.input) || p.consume() != '<' {
		return nil, fmt.Errorf("expected < after \\k")
	}
	nameEnd := strings.IndexRune(p.input[p.pos:], '>')
	if nameEnd == -1 {
		return nil, fmt.Errorf("unclosed backreference name")
	}
	name := p.input[p.pos : p.pos+nameEnd]
	p.pos += nameEnd + 1 // skip name and >

	idx, ok := p.names[name]
	if !ok {
		return nil, fmt.Errorf("backreference to unknown group name %q", name)
	}
	return &Backreference{Index: idx, Name: name}, nil
}

func (p *Parser) parseCharClass() (Node, error) {
	// Already consumed [
	negated := false
	if p.peek() == '^' {
		p.consume()
		negated = true
	}

	var members []*Literal

	// If ] is the first char (after optional ^), it's a literal ]
	if p.peek() == ']' {
		p.consume()
		members = p.appendMember(members, ']', ']')
	}

	for p.pos < len(p.input) && p.peek() != ']' {
		if p.peek() == '\\' {
			if esc, ok := p.classEscape(); ok {
				members = append(members, esc...)
				continue
			}
		}
		r1 := p.consumeClassChar()

		// Check for range a-z
		if p.peek() == '-' {
			p.consume() // eat -
			if p.peek() == ']' {
				// literal - at end
				members = p.appendMember(members, r1, r1)
				members = p.appendMember(members, '-', '-')
				break
			}
			r2 := p.consumeClassChar()
			members = p.appendMember(members, r1, r2)
		} else {
			members = p.appendMember(members, r1, r1)
		}
	}

	if p.pos >= len(p.input) || p.consume() != ']' {
		return nil, fmt.Errorf("unclosed character class")
	}

	return &CharClass{Members: members, Negated: negated}, nil
}

// appendMember adds a member range, plus its case-folded twin when the
// pattern is case-insensitive and the range folds cleanly.
func (p *Parser) appendMember(members []*Literal, lo, hi rune) []*Literal {
	members = append(members, &Literal{Lo: lo, Hi: hi})
	if p.flags.caseInsensitive {
		flo, ok1 := foldRune(lo)
		fhi, ok2 := foldRune(hi)
		if ok1 && ok2 && flo <= fhi {
			members = append(members, &Literal{Lo: flo, Hi: fhi})
		}
	}
	return members
}

// classEscape handles \d \D \w \W \s \S inside a character class. It
// reports false for escapes that stand for a single character, which are
// left for consumeClassChar so they can participate in ranges.
func (p *Parser) classEscape() ([]*Literal, bool) {
	if p.pos+1 >= len(p.input) {
		return nil, false
	}
	var members []*Literal
	negated := false
	switch rune(p.input[p.pos+1]) {
	case 'D':
		negated = true
		fallthrough
	case 'd':
		members = digitMembers()
	case 'W':
		negated = true
		fallthrough
	case 'w':
		members = wordMembers()
	case 'S':
		negated = true
		fallthrough
	case 's':
		members = spaceMembers()
	default:
		return nil, false
	}
	p.consume() // eat backslash
	p.consume() // eat class letter
	if negated {
		out := make([]*Literal, len(members))
		for i, m := range members {
			out[i] = &Literal{Lo: m.Lo, Hi: m.Hi, Negated: true}
		}
		return out, true
	}
	return members, true
}

func (p *Parser) consumeClassChar() rune {
	if p.peek() == '\\' {
		p.consume()
		if p.pos >= len(p.input) {
			return '\\'
		}
		esc := p.consume()
		switch esc {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		case 'f':
			return '\f'
		case 'v':
			return '\v'
		}
		return esc
	}
	return p.consume()
}

func (p *Parser) parseGroup() (Node, error) {
	// Already consumed (
	// Check for (? extensions
	if p.peek() == '?' {
		p.consume() // eat ?

		// Check for flags: (?i) or (?-i)
		if p.pos < len(p.input) && (p.peek() == 'i' || p.peek() == '-') {
			originalFlags := p.flags // Save flags before modification

			turnOn := true
			if p.peek() == '-' {
				turnOn = false
				p.consume() // eat -
			}

			if p.pos < len(p.input) && p.peek() == 'i' {
				p.consume() // eat i
				p.flags.caseInsensitive = turnOn
			}

			if p.pos < len(p.input) && p.peek() == ')' {
				p.consume() // eat )
				// Flag-setting group only; contributes nothing.
				return &Concat{}, nil
			}

			// (?i:...) is a non-capturing group with scoped flags
			if p.pos < len(p.input) && p.peek() == ':' {
				p.consume()                                // eat :
				defer func() { p.flags = originalFlags }() // Restore flags after group

				body, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				if p.pos >= len(p.input) || p.consume() != ')' {
					return nil, fmt.Errorf("unclosed group")
				}
				return body, nil
			}

			return nil, fmt.Errorf("invalid flag syntax")
		}

		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("invalid group syntax")
		}

		// Map: (?P<name>...), (?:...), (?=...), (?!...), (?<=...), (?<!...)

		switch p.peek() {
		case ':': // (?: non-capturing
			p.consume()
			node, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.consume() != ')' {
				return nil, fmt.Errorf("unclosed non-capturing group")
			}
			return node, nil

		case 'P': // (?P<name> named group
			p.consume()
			if p.consume() != '<' {
				return nil, fmt.Errorf("expected < in named group")
			}
			nameEnd := strings.IndexRune(p.input[p.pos:], '>')
			if nameEnd == -1 {
				return nil, fmt.Errorf("unclosed group name")
			}
			name := p.input[p.pos : p.pos+nameEnd]
			p.pos += nameEnd + 1 // skip name and >

			p.captures++
			idx := p.captures
			p.names[name] = idx

			node, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.consume() != ')' {
				return nil, fmt.Errorf("unclosed named group")
			}
			return &Capture{Body: node, Index: idx, Name: name}, nil

		case '=': // (?= lookahead)
			p.consume()
			return p.parseLookaround(false, false)

		case '!': // (?! neg lookahead)
			p.consume()
			return p.parseLookaround(true, false)

		case '<': // (?<= lookbehind) or (?<! neg lookbehind)
			p.consume()
			neg := false
			if p.peek() == '!' {
				neg = true
				p.consume()
			} else if p.peek() == '=' {
				p.consume()
			} else {
				return nil, fmt.Errorf("invalid lookbehind syntax")
			}
			return p.parseLookaround(neg, true)
		default:
			return nil, fmt.Errorf("invalid group extension: ?%c", p.peek())
		}
	}

	// Normal capturing group
	p.captures++
	idx := p.captures
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.consume() != ')' {
		return nil, fmt.Errorf("unclosed capturing group")
	}
	return &Capture{Body: node, Index: idx}, nil
}

func (p *Parser) parseLookaround(negative, behind bool) (Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.consume() != ')' {
		return nil, fmt.Errorf("unclosed lookaround")
	}
	return &Lookaround{Body: node, Negative: negative, Behind: behind}, nil
}

// Helpers

func (p *Parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r
}

func (p *Parser) consume() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	r, w := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += w
	return r
}

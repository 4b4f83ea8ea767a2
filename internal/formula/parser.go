package formula

import (
	"fmt"
)

// The AST node set is the whole language: numbers, uppercase component
// identifiers, unary +/-, the arithmetic and comparison operators, the
// ternary conditional, and calls to the four allow-listed functions.
// There is nothing else to evaluate, which is what makes the interpreter
// safe: unsupported constructs cannot be represented, let alone run.

type node interface {
	// refs appends the component codes referenced under this node.
	refs(set map[string]struct{})
}

type numberNode struct {
	text string
}

type identNode struct {
	name string
}

type unaryNode struct {
	op      tokenKind
	operand node
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

type condNode struct {
	cond, then, els node
}

type callNode struct {
	fn   string
	args []node
}

func (numberNode) refs(map[string]struct{}) {}

func (n identNode) refs(set map[string]struct{}) { set[n.name] = struct{}{} }

func (n unaryNode) refs(set map[string]struct{}) { n.operand.refs(set) }

func (n binaryNode) refs(set map[string]struct{}) {
	n.left.refs(set)
	n.right.refs(set)
}

func (n condNode) refs(set map[string]struct{}) {
	n.cond.refs(set)
	n.then.refs(set)
	n.els.refs(set)
}

func (n callNode) refs(set map[string]struct{}) {
	for _, a := range n.args {
		a.refs(set)
	}
}

// parser is a recursive-descent parser with the grammar:
//
//	conditional = comparison [ "?" conditional ":" conditional ]
//	comparison  = additive [ ("<"|"<="|">"|">="|"=="|"!=") additive ]
//	additive    = multiplicative { ("+"|"-") multiplicative }
//	multiplicative = unary { ("*"|"/"|"%") unary }
//	unary       = ("+"|"-") unary | power
//	power       = primary [ "**" unary ]
//	primary     = NUMBER | IDENT | FUNC "(" args ")" | "(" conditional ")"
type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return root, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, fmt.Errorf("expected %s at position %d, got %q", what, t.pos, t.text)
	}
	return p.next(), nil
}

func (p *parser) parseConditional() (node, error) {
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenQuestion {
		return cond, nil
	}
	p.next()
	then, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokenColon, "':'"); err != nil {
		return nil, err
	}
	els, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return condNode{cond: cond, then: then, els: els}, nil
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.peek().kind {
	case tokenLT, tokenLE, tokenGT, tokenGE, tokenEQ, tokenNE:
		op := p.next().kind
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: op, left: left, right: right}, nil
	}
	return left, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenPlus || p.peek().kind == tokenMinus {
		op := p.next().kind
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenStar || p.peek().kind == tokenSlash || p.peek().kind == tokenPercent {
		op := p.next().kind
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().kind == tokenPlus || p.peek().kind == tokenMinus {
		op := p.next().kind
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenPower {
		return base, nil
	}
	p.next()
	// Exponentiation is right-associative.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: tokenPower, left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokenNumber:
		p.next()
		return numberNode{text: t.text}, nil
	case tokenIdent:
		p.next()
		if !isUpperIdent(t.text) {
			return nil, fmt.Errorf("invalid component code %q at position %d", t.text, t.pos)
		}
		return identNode{name: t.text}, nil
	case tokenFunc:
		p.next()
		if _, err := p.expect(tokenLParen, "'('"); err != nil {
			return nil, err
		}
		var args []node
		if p.peek().kind != tokenRParen {
			for {
				arg, err := p.parseConditional()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().kind != tokenComma {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		if err := checkArity(t.text, len(args), t.pos); err != nil {
			return nil, err
		}
		return callNode{fn: t.text, args: args}, nil
	case tokenLParen:
		p.next()
		inner, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokenEOF:
		return nil, fmt.Errorf("unexpected end of formula at position %d", t.pos)
	default:
		return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
	}
}

func checkArity(fn string, argc, pos int) error {
	switch fn {
	case "min", "max":
		if argc < 2 {
			return fmt.Errorf("%s requires at least two arguments at position %d", fn, pos)
		}
	case "abs":
		if argc != 1 {
			return fmt.Errorf("abs requires exactly one argument at position %d", pos)
		}
	case "round":
		if argc != 1 && argc != 2 {
			return fmt.Errorf("round requires one or two arguments at position %d", pos)
		}
	}
	return nil
}

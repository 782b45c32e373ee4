package solution

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrDivisionByZero is returned when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("solution: division by zero")

// ErrLiteralRange is returned when a literal does not fit in 32 bits.
var ErrLiteralRange = errors.New("solution: literal out of range")

// ErrResultRange is returned when the result does not fit in an int64.
var ErrResultRange = errors.New("solution: result out of range")

// ParseError reports malformed expression syntax.
type ParseError struct {
	Pos int    // byte offset in the expression
	Msg string // what was wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("solution: parse error at %d: %s", e.Pos, e.Msg)
}

// Evaluate parses expr and returns its value truncated toward zero.
//
// Supported: non-negative integer literals, binary + - * /, unary + and -,
// and parentheses. * and / bind tighter than + and -, and operators of equal
// precedence associate left. Arithmetic is exact; only the final value is
// truncated, so "7 / 2 * 2" evaluates to 7.
//
// Postcondition: returns a *ParseError for malformed syntax, or one of
// ErrDivisionByZero, ErrLiteralRange, ErrResultRange.
func Evaluate(expr string) (int64, error) {
	r, err := EvaluateExact(expr)
	if err != nil {
		return 0, err
	}
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !q.IsInt64() {
		return 0, ErrResultRange
	}
	return q.Int64(), nil
}

// EvaluateExact parses expr and returns its exact rational value.
func EvaluateExact(expr string) (*big.Rat, error) {
	p := &parser{src: expr}
	p.next()
	if p.tok.kind == tokEOF {
		return nil, &ParseError{Pos: p.tok.pos, Msg: "empty expression"}
	}
	v, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return v, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokOp
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	pos  int
	text string
}

type parser struct {
	src string
	off int
	tok token
}

// next advances p.tok to the following token, skipping spaces.
func (p *parser) next() {
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.off]
	switch {
	case c >= '0' && c <= '9':
		for p.off < len(p.src) && p.src[p.off] >= '0' && p.src[p.off] <= '9' {
			p.off++
		}
		p.tok = token{kind: tokNumber, pos: start, text: p.src[start:p.off]}
		return
	case c == '+' || c == '-' || c == '*' || c == '/':
		p.tok = token{kind: tokOp, pos: start, text: string(c)}
	case c == '(':
		p.tok = token{kind: tokLParen, pos: start, text: "("}
	case c == ')':
		p.tok = token{kind: tokRParen, pos: start, text: ")"}
	default:
		p.tok = token{kind: tokInvalid, pos: start, text: string(c)}
	}
	p.off++
}

func (p *parser) unexpected() error {
	switch p.tok.kind {
	case tokEOF:
		return &ParseError{Pos: p.tok.pos, Msg: "unexpected end of expression"}
	case tokInvalid:
		return &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("invalid character %q", p.tok.text)}
	default:
		return &ParseError{Pos: p.tok.pos, Msg: fmt.Sprintf("unexpected %q", p.tok.text)}
	}
}

func (p *parser) isOp(ops ...string) bool {
	if p.tok.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if p.tok.text == op {
			return true
		}
	}
	return false
}

// expr := term (("+" | "-") term)*
func (p *parser) expr() (*big.Rat, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.tok.text
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left.Add(left, right)
		} else {
			left.Sub(left, right)
		}
	}
	return left, nil
}

// term := factor (("*" | "/") factor)*
func (p *parser) term() (*big.Rat, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.tok.text
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left.Mul(left, right)
			continue
		}
		if right.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		left.Quo(left, right)
	}
	return left, nil
}

// factor := ("+" | "-") factor | number | "(" expr ")"
func (p *parser) factor() (*big.Rat, error) {
	switch p.tok.kind {
	case tokOp:
		if !p.isOp("+", "-") {
			return nil, p.unexpected()
		}
		neg := p.tok.text == "-"
		p.next()
		v, err := p.factor()
		if err != nil {
			return nil, err
		}
		if neg {
			v.Neg(v)
		}
		return v, nil
	case tokNumber:
		n, ok := new(big.Int).SetString(p.tok.text, 10)
		if !ok || n.BitLen() > 32 {
			return nil, ErrLiteralRange
		}
		p.next()
		return new(big.Rat).SetInt(n), nil
	case tokLParen:
		p.next()
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			if p.tok.kind == tokEOF {
				return nil, &ParseError{Pos: p.tok.pos, Msg: "missing closing parenthesis"}
			}
			return nil, p.unexpected()
		}
		p.next()
		return v, nil
	default:
		return nil, p.unexpected()
	}
}

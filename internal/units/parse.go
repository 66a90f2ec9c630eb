package units

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// parser is a recursive-descent parser over a normalized unit expression:
//
//	expr   = term { ("*" | "/" | " ") term }
//	term   = factor [ ("**" | "^") int ]
//	factor = symbol [int] | number | "(" expr ")"
type parser struct {
	reg *Registry
	in  string
	pos int
}

func (p *parser) parse() (Unit, error) {
	u, err := p.expr()
	if err != nil {
		return Unit{}, err
	}
	p.skipSpace()
	if p.pos < len(p.in) {
		return Unit{}, p.errorf("unexpected %q", p.in[p.pos:])
	}
	return u, nil
}

func (p *parser) expr() (Unit, error) {
	u, err := p.term()
	if err != nil {
		return Unit{}, err
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.in) || p.in[p.pos] == ')' {
			return u, nil
		}

		divide := false
		switch p.in[p.pos] {
		case '/':
			divide = true
			p.pos++
		case '*':
			p.pos++
		}

		start := p.pos
		next, err := p.term()
		if err != nil {
			return Unit{}, err
		}
		if divide {
			next, _ = next.pow(-1)
		}
		var ok bool
		if u, ok = u.mul(next); !ok {
			return Unit{}, p.overflow(start)
		}
	}
}

func (p *parser) term() (Unit, error) {
	u, err := p.factor()
	if err != nil {
		return Unit{}, err
	}

	save := p.pos
	p.skipSpace()
	switch {
	case p.consume("**"), p.consume("^"):
		p.skipSpace()
		start := p.pos
		n, err := p.integer()
		if err != nil {
			return Unit{}, err
		}
		v, ok := u.pow(n)
		if !ok {
			return Unit{}, p.overflow(start)
		}
		return v, nil
	default:
		p.pos = save
		return u, nil
	}
}

func (p *parser) factor() (Unit, error) {
	p.skipSpace()
	if p.pos >= len(p.in) {
		return Unit{}, p.errorf("expected unit")
	}

	c := p.in[p.pos]
	switch {
	case c == '(':
		p.pos++
		u, err := p.expr()
		if err != nil {
			return Unit{}, err
		}
		if !p.consume(")") {
			return Unit{}, p.errorf("missing ')'")
		}
		return u, nil
	case c >= '0' && c <= '9' || c == '.':
		return p.number()
	default:
		return p.symbol()
	}
}

func (p *parser) symbol() (Unit, error) {
	start := p.pos
	for p.pos < len(p.in) {
		r, size := utf8.DecodeRuneInString(p.in[p.pos:])
		if !unicode.IsLetter(r) && r != '%' && r != '_' {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		return Unit{}, p.errorf("unexpected %q", p.in[p.pos:])
	}

	name := p.in[start:p.pos]
	u, err := p.reg.Lookup(name)
	if err != nil {
		return Unit{}, &ParseError{Input: p.in, Pos: start, Msg: fmt.Sprintf("unknown unit %q", name)}
	}
	u.Offset = 0

	// Exponent written directly after the symbol, e.g. m2 or cm-3.
	if p.pos < len(p.in) && (isDigit(p.in[p.pos]) || p.in[p.pos] == '-' && p.pos+1 < len(p.in) && isDigit(p.in[p.pos+1])) {
		exp := p.pos
		n, err := p.integer()
		if err != nil {
			return Unit{}, err
		}
		var ok bool
		if u, ok = u.pow(n); !ok {
			return Unit{}, p.overflow(exp)
		}
	}
	return u, nil
}

func (p *parser) number() (Unit, error) {
	n := scanNumber(p.in[p.pos:])
	if n == 0 {
		return Unit{}, p.errorf("expected number")
	}
	v, err := strconv.ParseFloat(p.in[p.pos:p.pos+n], 64)
	if err != nil {
		return Unit{}, p.errorf("invalid number %q", p.in[p.pos:p.pos+n])
	}
	p.pos += n
	return Unit{Factor: v}, nil
}

func (p *parser) integer() (int, error) {
	start := p.pos
	if p.pos < len(p.in) && (p.in[p.pos] == '-' || p.in[p.pos] == '+') {
		p.pos++
	}
	for p.pos < len(p.in) && isDigit(p.in[p.pos]) {
		p.pos++
	}
	n, err := strconv.Atoi(p.in[start:p.pos])
	if err != nil {
		return 0, &ParseError{Input: p.in, Pos: start, Msg: "expected integer exponent"}
	}
	// Fractional exponents such as m^2.5 are not supported.
	if p.pos < len(p.in) && (p.in[p.pos] == '.' || isDigit(p.in[p.pos])) {
		return 0, p.errorf("non-integer exponent %q", p.in[start:p.pos]+p.in[p.pos:p.pos+scanNumber(p.in[p.pos:])])
	}
	return n, nil
}

func (p *parser) overflow(pos int) error {
	return &ParseError{Input: p.in, Pos: pos, Msg: fmt.Sprintf("exponent out of range [-%d, %d]", MaxExponent, MaxExponent)}
}

func (p *parser) consume(s string) bool {
	if len(p.in)-p.pos >= len(s) && p.in[p.pos:p.pos+len(s)] == s {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.in) && p.in[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.in, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

// scanNumber returns the length of the decimal floating point literal at the
// start of s, or 0. An 'e' is part of the literal only when digits follow,
// so "5eq" scans as "5".
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

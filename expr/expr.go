/*
 * rv32emu - SDB expression evaluator
 *
 * Copyright 2026, rv32emu contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package expr implements the SDB's expression language (C8): a lexer
// and a Pratt parser over integers, registers, CSRs, memory dereference
// and a small operator set, grounded on the teacher's hand-written
// recursive-descent line scanner style (command/parser's cmdLine
// helpers) generalized into a full tokenizer.
package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver is how the evaluator reaches live CPU/memory state without
// importing cpu/memory directly (sim supplies the concrete binding).
type Resolver interface {
	PC() uint32
	Reg(name string) (uint32, bool)
	CSR(name string) (uint32, bool)
	Deref(addr uint32) (uint32, error)
}

// Eval parses and evaluates text against r. A lex/parse error or
// division by zero returns a human-readable error; callers report it
// and continue (§4.5, §7).
func Eval(text string, r Resolver) (uint32, error) {
	toks, err := lex(text)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks, r: r}
	v, err := p.parseOr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("unexpected token %q", p.toks[p.pos].text)
	}
	return v, nil
}

type tokKind int

const (
	tokNumber tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case isDigit(c):
			j := i
			if c == '0' && i+1 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X') {
				j = i + 2
				for j < len(s) && isHexDigit(s[j]) {
					j++
				}
			} else {
				for j < len(s) && isDigit(s[j]) {
					j++
				}
			}
			toks = append(toks, token{tokNumber, s[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, s[i:j]})
			i = j
		default:
			op, n, err := lexOp(s[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokOp, op})
			i += n
		}
	}
	return toks, nil
}

func lexOp(s string) (string, int, error) {
	two := map[string]bool{"==": true, "!=": true, "&&": true, "||": true}
	if len(s) >= 2 && two[s[:2]] {
		return s[:2], 2, nil
	}
	one := "*/+-!&~|"
	if strings.IndexByte(one, s[0]) >= 0 {
		return s[:1], 1, nil
	}
	return "", 0, fmt.Errorf("unexpected character %q", s[0])
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool {
	return c == '$' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

type parser struct {
	toks []token
	pos  int
	r    Resolver
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) at(kind tokKind, text string) bool {
	t, ok := p.peek()
	return ok && t.kind == kind && t.text == text
}

// Precedence (tightest first): unary; * /; + -; == !=; &&; ||.

func (p *parser) parseOr() (uint32, error) {
	left, err := p.parseAnd()
	if err != nil {
		return 0, err
	}
	for p.at(tokOp, "||") {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return 0, err
		}
		left = boolU(left != 0 || right != 0)
	}
	return left, nil
}

func (p *parser) parseAnd() (uint32, error) {
	left, err := p.parseEquality()
	if err != nil {
		return 0, err
	}
	for p.at(tokOp, "&&") {
		p.pos++
		right, err := p.parseEquality()
		if err != nil {
			return 0, err
		}
		left = boolU(left != 0 && right != 0)
	}
	return left, nil
}

func (p *parser) parseEquality() (uint32, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return 0, err
	}
	for p.at(tokOp, "==") || p.at(tokOp, "!=") {
		op := p.toks[p.pos].text
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return 0, err
		}
		if op == "==" {
			left = boolU(left == right)
		} else {
			left = boolU(left != right)
		}
	}
	return left, nil
}

func (p *parser) parseAdditive() (uint32, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return 0, err
	}
	for p.at(tokOp, "+") || p.at(tokOp, "-") {
		op := p.toks[p.pos].text
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (uint32, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for p.at(tokOp, "*") || p.at(tokOp, "/") {
		op := p.toks[p.pos].text
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			left *= right
		} else {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		}
	}
	return left, nil
}

// parseUnary is right-associative: "* - & ~ !".
func (p *parser) parseUnary() (uint32, error) {
	if t, ok := p.peek(); ok && t.kind == tokOp {
		switch t.text {
		case "*":
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			return p.r.Deref(v)
		case "-":
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			return uint32(-int32(v)), nil
		case "&":
			p.pos++
			return p.parseUnary()
		case "~":
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			return ^v, nil
		case "!":
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			return boolU(v == 0), nil
		}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (uint32, error) {
	t, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch t.kind {
	case tokNumber:
		p.pos++
		return parseNumber(t.text)
	case tokIdent:
		p.pos++
		return p.resolveIdent(t.text)
	case tokLParen:
		p.pos++
		v, err := p.parseOr()
		if err != nil {
			return 0, err
		}
		if !p.at(tokRParen, ")") {
			return 0, fmt.Errorf("expected ')'")
		}
		p.pos++
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected token %q", t.text)
	}
}

func (p *parser) resolveIdent(name string) (uint32, error) {
	if name == "pc" {
		return p.r.PC(), nil
	}
	if v, ok := p.r.Reg(name); ok {
		return v, nil
	}
	if v, ok := p.r.CSR(name); ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown identifier %q", name)
}

func parseNumber(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func boolU(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

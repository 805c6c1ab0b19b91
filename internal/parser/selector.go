package parser

import (
	"strings"

	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// parseSelections parses a comma-separated selector list that must end at
// token index end.
//
// GRAMMAR:
//
//	selections = selection { "," selection }
//	selection  = [combinator] selector { combinator selector }
//	combinator = SPACE | [SPACE] (">" | "+" | "~" | "<" | "<<") [SPACE]
func (p *Parser) parseSelections(end int) []*ast.Selection {
	var sels []*ast.Selection
	p.skipSpaces()
	for {
		sels = append(sels, p.parseSelection(end))
		p.skipSpaces()
		if p.current >= end || !p.match(lexer.TokenComma) {
			break
		}
		p.skipSpaces()
	}
	p.expectIndex(end)
	return sels
}

func (p *Parser) parseSelection(end int) *ast.Selection {
	sel := &ast.Selection{Position: p.peek().Position}
	if !p.peek().Type.IsCombinator() {
		sel.Head = p.parseSelector()
		if sel.Head == nil {
			p.fail("expected a selector, got " + describe(p.peek()))
		}
	}
	for p.current < end {
		save := p.current
		spaced := p.skipSpaces()
		op := ""
		if tok := p.peek(); tok.Type.IsCombinator() && p.current < end {
			p.advance()
			op = tok.Lexeme
			p.skipSpaces()
		} else if !spaced || p.current >= end || p.check(lexer.TokenComma) {
			p.current = save
			break
		}
		next := p.parseSelector()
		if next == nil {
			p.fail("expected a selector, got " + describe(p.peek()))
		}
		sel.Tail = append(sel.Tail, ast.Narrower{Op: op, Sel: next})
	}
	return sel
}

// parseSelector parses one compound selector and returns nil when the
// next token cannot start one.
//
// GRAMMAR:
//
//	selector = [node] [ID] {"." NAME} {"[" attributes "]"} {suffix}
//	node     = "&" | "*" | NAME | BEM_SUFFIX
//	suffix   = ":" NAME ["(" ... ")"] | "::" NAME | "!" NAME
func (p *Parser) parseSelector() *ast.Selector {
	sel := &ast.Selector{Position: p.peek().Position}
	matched := false

	switch tok := p.peek(); tok.Type {
	case lexer.TokenAmp:
		p.advance()
		sel.Node = "&"
		matched = true
	case lexer.TokenStar:
		p.advance()
		sel.Node = "*"
		matched = true
	case lexer.TokenIdent:
		p.advance()
		if strings.HasPrefix(tok.Lexeme, "-") {
			sel.Classes = append(sel.Classes, tok.Lexeme)
		} else {
			sel.Node = tok.Lexeme
		}
		matched = true
	}

	if tok := p.peek(); tok.Type == lexer.TokenHash {
		p.advance()
		sel.ID = tok.Lexeme
		matched = true
	}

	for {
		switch p.peek().Type {
		case lexer.TokenDot:
			p.advance()
			name := p.consume(lexer.TokenIdent, "expected a class name after '.'")
			sel.Classes = append(sel.Classes, name.Lexeme)
		case lexer.TokenLeftBracket:
			p.advance()
			sel.Attributes = append(sel.Attributes, p.parseAttributes()...)
		case lexer.TokenColon:
			if !p.isSuffix() {
				return finish(sel, matched)
			}
			sel.Suffixes = append(sel.Suffixes, p.parseSuffix())
		case lexer.TokenBang:
			tok := p.advance()
			sel.States = append(sel.States, tok.Lexeme[1:])
		default:
			return finish(sel, matched)
		}
		matched = true
	}
}

func finish(sel *ast.Selector, matched bool) *ast.Selector {
	if !matched {
		return nil
	}
	return sel
}

// isSuffix reports whether the colon at the cursor starts a pseudo
// selector rather than ending the header.
func (p *Parser) isSuffix() bool {
	next := p.peekAt(1)
	if next.Type == lexer.TokenColon {
		next = p.peekAt(2)
	}
	return next.Type == lexer.TokenIdent
}

// parseSuffix parses `:name`, `::name` or `:name(...)`. The returned text
// has the first colon removed.
func (p *Parser) parseSuffix() string {
	p.advance()
	prefix := ""
	if p.match(lexer.TokenColon) {
		prefix = ":"
	}
	name := p.consume(lexer.TokenIdent, "expected a pseudo selector name")
	suffix := prefix + name.Lexeme
	if p.check(lexer.TokenLeftParen) {
		closing := p.matchingParen(p.current)
		if closing < 0 {
			p.fail("unbalanced '(' in pseudo selector")
		}
		suffix += "(" + strings.TrimSpace(p.textFrom(p.current+1, closing)) + ")"
		p.current = closing + 1
	}
	return suffix
}

// parseAttributes parses the inside of `[...]`, after the opening bracket.
//
// GRAMMAR:
//
//	attributes = attribute { "," attribute } "]"
//	attribute  = NAME [op value]
func (p *Parser) parseAttributes() []ast.Attribute {
	var attrs []ast.Attribute
	for {
		p.skipSpaces()
		name := p.consume(lexer.TokenIdent, "expected an attribute name")
		attr := ast.Attribute{Name: name.Lexeme}
		p.skipSpaces()
		if op := p.peek(); op.Type.IsAttributeOperator() {
			p.advance()
			attr.Op = op.Lexeme
			p.skipSpaces()
			from := p.current
			for !p.check(lexer.TokenRightBracket) && !p.check(lexer.TokenComma) {
				if p.check(lexer.TokenEOF) {
					p.fail("expected ']'")
				}
				p.advance()
			}
			attr.Value = strings.TrimSpace(p.textFrom(from, p.current))
			if attr.Value == "" {
				p.fail("expected an attribute value")
			}
		}
		attrs = append(attrs, attr)
		if p.match(lexer.TokenRightBracket) {
			return attrs
		}
		p.consume(lexer.TokenComma, "expected ',' or ']'")
	}
}

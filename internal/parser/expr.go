package parser

import (
	"strconv"
	"strings"

	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// rawFunctions keep their arguments as written. Their argument syntax
// (calc(100% - 2px), var(--x)) is CSS, not PCSS.
var rawFunctions = map[string]bool{
	"calc":  true,
	"var":   true,
	"env":   true,
	"min":   true,
	"max":   true,
	"clamp": true,
	"attr":  true,
}

// parseValueList parses the comma list of space lists that makes up a
// property value.
//
// GRAMMAR:
//
//	values = spaced { "," spaced }
//	spaced = expression { SPACE expression }
func (p *Parser) parseValueList() ast.Expr {
	pos := p.peek().Position
	first := p.parseSpaceList()
	items := []ast.Expr{first}
	for {
		save := p.current
		p.skipSpaces()
		if !p.match(lexer.TokenComma) {
			p.current = save
			break
		}
		p.skipSpaces()
		items = append(items, p.parseSpaceList())
	}
	if len(items) == 1 {
		return first
	}
	return &ast.List{At: ast.At{Position: pos}, Sep: ",", Items: items}
}

func (p *Parser) parseSpaceList() ast.Expr {
	pos := p.peek().Position
	items := []ast.Expr{p.parseExpression()}
	for {
		save := p.current
		if !p.skipSpaces() || !p.startsValue() {
			p.current = save
			break
		}
		items = append(items, p.parseExpression())
	}
	if len(items) == 1 {
		return items[0]
	}
	return &ast.List{At: ast.At{Position: pos}, Sep: " ", Items: items}
}

// startsValue reports whether the cursor is at the first token of a value.
func (p *Parser) startsValue() bool {
	switch p.peek().Type {
	case lexer.TokenNumber, lexer.TokenHash, lexer.TokenURL, lexer.TokenReference,
		lexer.TokenString, lexer.TokenRawString, lexer.TokenIdent, lexer.TokenLeftParen:
		return true
	}
	return false
}

// parseExpression parses a prefix followed by its suffixes.
//
// GRAMMAR:
//
//	expression = prefix { "." NAME arguments | "/" prefix } [ infix ]
//	infix      = [SPACE] OPERATOR [SPACE] expression
//
// The infix rule is right-recursive; combine repairs operator priority so
// that the resulting tree evaluates left to right by priority.
func (p *Parser) parseExpression() ast.Expr {
	expr := p.parsePrefix()
	for {
		switch {
		case p.check(lexer.TokenDot) && p.peekAt(1).Type == lexer.TokenIdent && p.peekAt(2).Type == lexer.TokenLeftParen:
			p.advance()
			name := p.advance()
			expr = &ast.Method{
				At:     ast.At{Position: name.Position},
				Target: expr,
				Name:   name.Lexeme,
				Args:   p.parseArguments(),
			}
		case p.check(lexer.TokenSlash) && p.peekAt(1).Type != lexer.TokenSpace:
			// 12px/1.5 is a CSS shorthand separator, not a division.
			list, ok := expr.(*ast.List)
			if !ok || list.Sep != "/" {
				list = &ast.List{At: ast.At{Position: expr.Pos()}, Sep: "/", Items: []ast.Expr{expr}}
			}
			p.advance()
			list.Items = append(list.Items, p.parsePrefix())
			expr = list
		default:
			return p.parseInfix(expr)
		}
	}
}

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	save := p.current
	p.skipSpaces()
	op := p.peek()
	if !op.Type.IsInfixOperator() {
		p.current = save
		return left
	}
	p.advance()
	if !p.skipSpaces() && op.Type == lexer.TokenMinus {
		p.current = save
		return left
	}
	if !p.startsValue() {
		p.fail("expected a value after '" + op.Lexeme + "'")
	}
	right := p.parseExpression()
	return combine(op.Lexeme, op.Position, left, right)
}

// parsePrefix parses a single value or a parenthesized expression.
func (p *Parser) parsePrefix() ast.Expr {
	tok := p.peek()
	at := ast.At{Position: tok.Position}
	switch tok.Type {
	case lexer.TokenLeftParen:
		p.advance()
		p.skipSpaces()
		inner := p.parseExpression()
		p.skipSpaces()
		p.consume(lexer.TokenRightParen, "expected ')'")
		return &ast.Parens{At: at, X: inner}
	case lexer.TokenNumber:
		return p.parseNumber()
	case lexer.TokenHash:
		p.advance()
		c, ok := parseHex(tok.Lexeme[1:])
		if !ok {
			p.failAt(tok, "invalid color "+tok.Lexeme)
		}
		c.At = at
		return c
	case lexer.TokenURL:
		p.advance()
		return &ast.URL{At: at, Value: strings.TrimSpace(tok.Lexeme)}
	case lexer.TokenReference:
		p.advance()
		return &ast.Ref{At: at, Name: tok.Lexeme[1:]}
	case lexer.TokenString:
		p.advance()
		return &ast.Str{At: at, Value: tok.Lexeme[1 : len(tok.Lexeme)-1], Quote: tok.Lexeme[0]}
	case lexer.TokenRawString:
		p.advance()
		return &ast.Raw{At: at, Value: tok.Lexeme[1 : len(tok.Lexeme)-1]}
	case lexer.TokenIdent:
		p.advance()
		if p.check(lexer.TokenLeftParen) {
			return p.parseCall(tok)
		}
		return &ast.Word{At: at, Value: tok.Lexeme}
	default:
		p.fail("expected a value, got " + describe(tok))
		return nil
	}
}

// parseNumber parses a number and the unit glued to it.
func (p *Parser) parseNumber() *ast.Number {
	tok := p.consume(lexer.TokenNumber, "expected a number")
	value, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.failAt(tok, "invalid number "+tok.Lexeme)
	}
	n := &ast.Number{At: ast.At{Position: tok.Position}, Value: value}
	switch p.peek().Type {
	case lexer.TokenPercent:
		p.advance()
		n.Unit = "%"
	case lexer.TokenIdent:
		n.Unit = p.advance().Lexeme
	}
	return n
}

// parseCall parses a function call whose name was just consumed. rgb()
// and rgba() with literal channels become colors.
func (p *Parser) parseCall(name lexer.Token) ast.Expr {
	at := ast.At{Position: name.Position}
	if rawFunctions[name.Lexeme] {
		closing := p.matchingParen(p.current)
		if closing < 0 {
			p.fail("expected ')'")
		}
		raw := strings.TrimSpace(p.textFrom(p.current+1, closing))
		p.current = closing + 1
		return &ast.Call{At: at, Name: name.Lexeme, Raw: &raw}
	}
	args := p.parseArguments()
	if name.Lexeme == "rgb" || name.Lexeme == "rgba" {
		if c, ok := rgbLiteral(args); ok {
			c.At = at
			return c
		}
	}
	return &ast.Call{At: at, Name: name.Lexeme, Args: args}
}

// parseArguments parses `( [spaced {"," spaced}] )`.
func (p *Parser) parseArguments() []ast.Expr {
	p.consume(lexer.TokenLeftParen, "expected '('")
	p.skipSpaces()
	var args []ast.Expr
	if p.match(lexer.TokenRightParen) {
		return args
	}
	for {
		args = append(args, p.parseSpaceList())
		p.skipSpaces()
		if p.match(lexer.TokenRightParen) {
			return args
		}
		p.consume(lexer.TokenComma, "expected ',' or ')' in arguments")
		p.skipSpaces()
	}
}

// parseHex decodes 3, 4, 6 or 8 hex digits. Short forms double each digit.
func parseHex(digits string) (*ast.Color, bool) {
	switch len(digits) {
	case 3, 4:
		var long strings.Builder
		for _, d := range digits {
			long.WriteRune(d)
			long.WriteRune(d)
		}
		digits = long.String()
	case 6, 8:
	default:
		return nil, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, false
	}
	c := &ast.Color{A: 1}
	if len(digits) == 8 {
		c.A = float64(v&0xFF) / 255
		c.HasAlpha = true
		v >>= 8
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c, true
}

func rgbLiteral(args []ast.Expr) (*ast.Color, bool) {
	if len(args) != 3 && len(args) != 4 {
		return nil, false
	}
	var channels [4]float64
	for i, arg := range args {
		n, ok := arg.(*ast.Number)
		if !ok {
			return nil, false
		}
		switch {
		case n.Unit == "%" && i < 3:
			channels[i] = n.Value * 255 / 100
		case n.Unit == "%":
			channels[i] = n.Value / 100
		case n.Unit != "":
			return nil, false
		default:
			channels[i] = n.Value
		}
	}
	c := &ast.Color{
		R: clampByte(channels[0]),
		G: clampByte(channels[1]),
		B: clampByte(channels[2]),
		A: 1,
	}
	if len(args) == 4 {
		c.A = channels[3]
		c.HasAlpha = true
	}
	return c, true
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

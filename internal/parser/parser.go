// Package parser implements the PCSS grammar.
//
// PARSING STRATEGY:
// Source is split into logical lines first (lexer.SplitLines). Each line is
// one statement, parsed by recursive descent over the tokens of that line;
// the indentation depth is attached to the statement as data and never
// consulted by the grammar.
//
// Line classification, in order:
//  1. `//` or `# ` comments
//  2. `@@name ...` raw CSS directives, `@name ...` PCSS directives
//  3. `name = value` variables
//  4. `name(args)` macro invocations
//  5. headers ending with `:` (selections or a keyframe percentage)
//  6. `name: value` properties
//  7. selections without a trailing colon
//
// ERROR HANDLING:
// Errors are fail-fast: the first syntax error aborts the file. Inside a
// line, helpers panic with a parseError that parseLine recovers into a
// SyntaxError carrying the line excerpt.
package parser

import (
	"encoding/json"
	"strings"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// Result is the output of Parse: the statements of one file in source
// order.
type Result struct {
	Filename   string
	Source     string
	Statements []ast.Stmt
}

// MarshalJSON dumps the parse tree with the rule name of every node.
func (r *Result) MarshalJSON() ([]byte, error) {
	stmts := make([]interface{}, 0, len(r.Statements))
	for _, s := range r.Statements {
		stmts = append(stmts, ast.Dump(s))
	}
	return json.Marshal(map[string]interface{}{
		"file":       r.Filename,
		"statements": stmts,
	})
}

// Parse parses a complete PCSS file. It has no side effects and no cache.
func Parse(filename string, src []byte) (*Result, error) {
	source := string(src)
	lines, err := lexer.SplitLines(filename, source)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Filename:   filename,
		Source:     source,
		Statements: make([]ast.Stmt, 0, len(lines)),
	}
	for _, line := range lines {
		stmt, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		res.Statements = append(res.Statements, stmt)
	}
	return res, nil
}

// Parser holds the tokens of the line being parsed.
type Parser struct {
	line    lexer.Line
	tokens  []lexer.Token
	current int
}

// parseError is the panic payload used to unwind out of a line.
type parseError struct {
	err *errors.SyntaxError
}

// New creates a parser for one line.
func New(line lexer.Line) (*Parser, error) {
	tokens, err := lexer.NewLine(line).Tokens()
	if err != nil {
		return nil, err
	}
	return &Parser{line: line, tokens: tokens}, nil
}

// ParseLine parses a single logical line into a statement.
func ParseLine(line lexer.Line) (ast.Stmt, error) {
	if c := comment(line); c != nil {
		return c, nil
	}
	p, err := New(line)
	if err != nil {
		return nil, err
	}
	return p.parseLine()
}

// ParseSelections parses a selector list such as the argument of
// extend(...).
func ParseSelections(filename, text string) ([]*ast.Selection, error) {
	p, err := New(lexer.Line{
		Text: text,
		Pos:  lexer.Position{Filename: filename, Line: 1, Column: 1},
		Raw:  text,
	})
	if err != nil {
		return nil, err
	}
	var sels []*ast.Selection
	err = p.protect(func() {
		sels = p.parseSelections(len(p.tokens) - 1)
	})
	return sels, err
}

// ParseExpression parses a value expression on its own.
func ParseExpression(filename, text string) (ast.Expr, error) {
	p, err := New(lexer.Line{
		Text: text,
		Pos:  lexer.Position{Filename: filename, Line: 1, Column: 1},
		Raw:  text,
	})
	if err != nil {
		return nil, err
	}
	var e ast.Expr
	err = p.protect(func() {
		p.skipSpaces()
		e = p.parseValueList()
		p.skipSpaces()
		p.expectEnd()
	})
	return e, err
}

func comment(line lexer.Line) *ast.Comment {
	text := line.Text
	switch {
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	case text == "#":
		text = ""
	case strings.HasPrefix(text, "# "), strings.HasPrefix(text, "#\t"):
		text = text[2:]
	default:
		return nil
	}
	return &ast.Comment{
		Line: ast.Line{Position: line.Pos, Indent: line.Indent},
		Text: strings.TrimSpace(text),
	}
}

// protect runs fn and converts a parseError panic into an error.
func (p *Parser) protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			err = pe.err
		}
	}()
	fn()
	return nil
}

func (p *Parser) parseLine() (stmt ast.Stmt, err error) {
	err = p.protect(func() {
		stmt = p.parseStatement()
	})
	return stmt, err
}

func (p *Parser) at() ast.Line {
	return ast.Line{Position: p.line.Pos, Indent: p.line.Indent}
}

func (p *Parser) parseStatement() ast.Stmt {
	first := p.peek()
	switch first.Type {
	case lexer.TokenAtAt:
		return p.parseCSSDirective()
	case lexer.TokenAt:
		return p.parseDirective()
	case lexer.TokenIdent:
		if p.isVariable() {
			return p.parseVariable()
		}
		if end := p.invocationEnd(); end >= 0 {
			return p.parseInvocation(end)
		}
	}

	if last := p.lastSignificant(); last >= 0 && p.tokens[last].Type == lexer.TokenColon {
		return p.parseBlockHeader(last)
	}

	if first.Type == lexer.TokenIdent && p.peekAt(1).Type == lexer.TokenColon {
		// `a:hover` is a header, `color:red` a property.
		if p.peekAt(2).Type == lexer.TokenSpace {
			return p.parseProperty()
		}
		save := p.current
		if stmt, ok := p.tryBlockHeader(); ok {
			return stmt
		}
		p.current = save
		return p.parseProperty()
	}

	return p.parseBlockHeader(len(p.tokens) - 1)
}

// isVariable matches `name = ...`.
func (p *Parser) isVariable() bool {
	i := 1
	if p.peekAt(i).Type == lexer.TokenSpace {
		i++
	}
	return p.peekAt(i).Type == lexer.TokenAssign
}

// invocationEnd returns the index of the closing paren when the line is
// exactly `name(...)`, optionally followed by `;`, and -1 otherwise.
func (p *Parser) invocationEnd() int {
	if p.peekAt(1).Type != lexer.TokenLeftParen {
		return -1
	}
	closing := p.matchingParen(p.current + 1)
	if closing < 0 {
		return -1
	}
	i := closing + 1
	for p.tokens[i].Type == lexer.TokenSpace || p.tokens[i].Type == lexer.TokenSemicolon {
		i++
	}
	if p.tokens[i].Type != lexer.TokenEOF {
		return -1
	}
	return closing
}

// lastSignificant returns the index of the last token that is not a space
// or EOF.
func (p *Parser) lastSignificant() int {
	for i := len(p.tokens) - 1; i >= 0; i-- {
		switch p.tokens[i].Type {
		case lexer.TokenEOF, lexer.TokenSpace:
			continue
		}
		return i
	}
	return -1
}

// matchingParen returns the index of the paren closing the one at open.
func (p *Parser) matchingParen(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.TokenLeftParen:
			depth++
		case lexer.TokenRightParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseCSSDirective parses `@@name rest`, keeping rest verbatim.
func (p *Parser) parseCSSDirective() ast.Stmt {
	tok := p.advance()
	value := strings.TrimSpace(p.textFrom(p.current, len(p.tokens)-1))
	value = strings.TrimSpace(strings.TrimSuffix(value, ";"))
	return &ast.CSSDirective{Line: p.at(), Name: tok.Lexeme[2:], Value: value}
}

// parseDirective parses the PCSS @-directives.
//
// GRAMMAR:
//
//	@macro NAME ["(" PARAMS ")" | PARAMS] [":"]
//	@keyframes NAME [":"]
//	@import PATH | @use PATH
//	@module NAME
//	@unit NAME "=" EXPR
//	@include PATH
func (p *Parser) parseDirective() ast.Stmt {
	tok := p.advance()
	switch name := tok.Lexeme[1:]; name {
	case "macro":
		return p.parseMacroDecl()
	case "keyframes":
		p.requireSpace()
		ident := p.consume(lexer.TokenIdent, "expected an animation name")
		p.skipSpaces()
		p.match(lexer.TokenColon)
		p.skipSpaces()
		p.expectEnd()
		return &ast.KeyframesDecl{Line: p.at(), Name: ident.Lexeme}
	case "import", "use":
		p.requireSpace()
		path, isURL := p.parsePath()
		return &ast.Import{Line: p.at(), Path: path, URL: isURL, Use: name == "use"}
	case "include":
		p.requireSpace()
		path, _ := p.parsePath()
		return &ast.Include{Line: p.at(), Path: path}
	case "module":
		p.requireSpace()
		ident := p.consume(lexer.TokenIdent, "expected a module name")
		p.skipSpaces()
		p.match(lexer.TokenSemicolon)
		p.skipSpaces()
		p.expectEnd()
		return &ast.Module{Line: p.at(), Name: ident.Lexeme}
	case "unit":
		p.requireSpace()
		ident := p.consume(lexer.TokenIdent, "expected a unit name")
		value := p.parseAssignment()
		return &ast.Unit{Line: p.at(), Name: ident.Lexeme, Value: value}
	default:
		p.failAt(tok, "unknown directive "+tok.Lexeme)
		return nil
	}
}

func (p *Parser) parseMacroDecl() ast.Stmt {
	p.requireSpace()
	ident := p.consume(lexer.TokenIdent, "expected a macro name")
	decl := &ast.MacroDecl{Line: p.at(), Name: ident.Lexeme}
	if p.match(lexer.TokenLeftParen) {
		p.skipSpaces()
		if !p.match(lexer.TokenRightParen) {
			decl.Params = p.parseParams()
			p.skipSpaces()
			p.consume(lexer.TokenRightParen, "expected ')' after macro parameters")
		}
	} else if p.skipSpaces() && p.checkParam() {
		decl.Params = p.parseParams()
	}
	p.skipSpaces()
	p.match(lexer.TokenColon)
	p.skipSpaces()
	p.expectEnd()
	return decl
}

func (p *Parser) checkParam() bool {
	return p.check(lexer.TokenIdent) || p.check(lexer.TokenReference)
}

func (p *Parser) parseParams() []string {
	var params []string
	for {
		if !p.checkParam() {
			p.fail("expected a parameter name")
		}
		tok := p.advance()
		params = append(params, strings.TrimPrefix(tok.Lexeme, "$"))
		p.skipSpaces()
		if !p.match(lexer.TokenComma) {
			return params
		}
		p.skipSpaces()
	}
}

// parsePath parses the argument of @import, @use and @include: a quoted
// string, url(...) or bare text up to the end of the line.
func (p *Parser) parsePath() (string, bool) {
	var path string
	isURL := false
	switch tok := p.peek(); tok.Type {
	case lexer.TokenString:
		p.advance()
		path = unquote(tok.Lexeme)
	case lexer.TokenURL:
		p.advance()
		path = unquote(strings.TrimSpace(tok.Lexeme))
		isURL = true
	default:
		path = strings.TrimSpace(p.textFrom(p.current, len(p.tokens)-1))
		path = strings.TrimSuffix(path, ";")
		p.current = len(p.tokens) - 1
	}
	p.skipSpaces()
	p.match(lexer.TokenSemicolon)
	p.skipSpaces()
	p.expectEnd()
	if path == "" {
		p.fail("expected a path")
	}
	return path, isURL
}

// parseAssignment parses `= EXPR [;]` through the end of the line.
func (p *Parser) parseAssignment() ast.Expr {
	p.skipSpaces()
	p.consume(lexer.TokenAssign, "expected '='")
	p.skipSpaces()
	value := p.parseValueList()
	p.skipSpaces()
	p.match(lexer.TokenSemicolon)
	p.skipSpaces()
	p.expectEnd()
	return value
}

func (p *Parser) parseVariable() ast.Stmt {
	ident := p.advance()
	value := p.parseAssignment()
	return &ast.Variable{Line: p.at(), Name: ident.Lexeme, Value: value}
}

func (p *Parser) parseInvocation(closing int) ast.Stmt {
	ident := p.advance()
	inv := &ast.MacroInvocation{Line: p.at(), Name: ident.Lexeme}
	if inv.IsSelectorReference() {
		inv.Raw = strings.TrimSpace(p.textFrom(p.current+1, closing))
		if inv.Raw == "" {
			p.fail(inv.Name + "() expects a selector")
		}
	} else {
		inv.Args = p.parseArguments()
	}
	p.current = closing + 1
	return inv
}

// parseProperty parses `name: values [!important] [;]`.
func (p *Parser) parseProperty() ast.Stmt {
	ident := p.consume(lexer.TokenIdent, "expected a property name")
	p.consume(lexer.TokenColon, "expected ':' after property name")
	p.skipSpaces()
	if p.check(lexer.TokenEOF) || p.check(lexer.TokenSemicolon) {
		p.fail("expected a value for property " + ident.Lexeme)
	}
	prop := &ast.Property{Line: p.at(), Name: ident.Lexeme}
	prop.Value = p.parseValueList()
	p.skipSpaces()
	if p.match(lexer.TokenImportant) {
		prop.Important = true
		p.skipSpaces()
	}
	p.match(lexer.TokenSemicolon)
	p.skipSpaces()
	p.expectEnd()
	return prop
}

// parseBlockHeader parses the tokens before index end as a block header.
func (p *Parser) parseBlockHeader(end int) ast.Stmt {
	header := &ast.BlockHeader{Line: p.at()}
	if p.check(lexer.TokenNumber) && p.peekAt(1).Type == lexer.TokenPercent {
		header.Percentage = p.parseNumber()
		p.skipSpaces()
		p.expectIndex(end)
	} else {
		header.Selections = p.parseSelections(end)
	}
	p.current = end
	if p.check(lexer.TokenColon) {
		p.advance()
	}
	p.skipSpaces()
	p.expectEnd()
	return header
}

// tryBlockHeader attempts to parse the whole line as selections.
func (p *Parser) tryBlockHeader() (stmt ast.Stmt, ok bool) {
	err := p.protect(func() {
		stmt = p.parseBlockHeader(len(p.tokens) - 1)
	})
	return stmt, err == nil
}

// Helper methods

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.current + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	if tok.Type != lexer.TokenEOF {
		p.current++
	}
	return tok
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

func (p *Parser) match(tokenTypes ...lexer.TokenType) bool {
	for _, tokenType := range tokenTypes {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}
	p.fail(message)
	return lexer.Token{}
}

// skipSpaces consumes blanks and reports whether there were any.
func (p *Parser) skipSpaces() bool {
	skipped := false
	for p.check(lexer.TokenSpace) {
		p.advance()
		skipped = true
	}
	return skipped
}

func (p *Parser) requireSpace() {
	if !p.skipSpaces() {
		p.fail("expected a space")
	}
}

func (p *Parser) expectEnd() {
	if !p.check(lexer.TokenEOF) {
		p.fail("unexpected " + describe(p.peek()))
	}
}

// expectIndex fails unless the parser stopped at token index end.
func (p *Parser) expectIndex(end int) {
	if p.current != end {
		p.fail("unexpected " + describe(p.peek()))
	}
}

// textFrom returns the source text covered by tokens [from, to).
func (p *Parser) textFrom(from, to int) string {
	if from >= to {
		return ""
	}
	base := p.line.Pos.Offset
	start := p.tokens[from].Position.Offset - base
	end := p.tokens[to].Position.Offset - base
	return p.line.Text[start:end]
}

func (p *Parser) fail(message string) {
	p.failAt(p.peek(), message)
}

func (p *Parser) failAt(tok lexer.Token, message string) {
	panic(parseError{err: &errors.SyntaxError{
		File:    tok.Position.Filename,
		Line:    tok.Position.Line,
		Column:  tok.Position.Column,
		Excerpt: p.line.Raw,
		Msg:     message,
	}})
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of line"
	case lexer.TokenSpace:
		return "space"
	default:
		return "'" + tok.Lexeme + "'"
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

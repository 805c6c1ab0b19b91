package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/sebastien/pythoniccss/internal/errors"
)

// Lexer converts the text of one logical line into tokens.
//
// PCSS statements never span lines, so the parser tokenizes line by line:
// SplitLines produces the lines, NewLine wraps one of them, and NextToken is
// called until TokenEOF.
//
// Unlike most lexers, blanks inside the line are returned as TokenSpace:
// "a b" is a descendant selector and "1px solid" a space list.
type Lexer struct {
	// source is the text of the line, without indentation.
	source string

	// base is the position of source[0] in the file.
	base Position

	// raw is the full physical line, for error excerpts.
	raw string

	// start is the byte offset of the token being scanned.
	start int

	// current is the byte offset being examined.
	current int
}

// New creates a Lexer for a single line of source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source: source,
		base:   Position{Filename: filename, Line: 1, Column: 1},
		raw:    source,
	}
}

// NewLine creates a Lexer for a line returned by SplitLines.
func NewLine(line Line) *Lexer {
	return &Lexer{
		source: line.Text,
		base:   line.Pos,
		raw:    line.Raw,
	}
}

// Tokens scans the whole line. The returned slice always ends with TokenEOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token of the line.
func (l *Lexer) NextToken() (Token, error) {
	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(TokenEOF, ""), nil
	}

	ch, _ := l.advance()

	if ch == ' ' || ch == '\t' {
		for l.peek() == ' ' || l.peek() == '\t' {
			l.advance()
		}
		return l.makeToken(TokenSpace, l.source[l.start:l.current]), nil
	}

	if isLetter(ch) {
		return l.scanIdentifier()
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, "("), nil
	case ')':
		return l.makeToken(TokenRightParen, ")"), nil
	case '[':
		return l.makeToken(TokenLeftBracket, "["), nil
	case ']':
		return l.makeToken(TokenRightBracket, "]"), nil
	case ',':
		return l.makeToken(TokenComma, ","), nil
	case '.':
		return l.makeToken(TokenDot, "."), nil
	case ':':
		return l.makeToken(TokenColon, ":"), nil
	case ';':
		return l.makeToken(TokenSemicolon, ";"), nil
	case '&':
		return l.makeToken(TokenAmp, "&"), nil
	case '+':
		return l.makeToken(TokenPlus, "+"), nil
	case '/':
		return l.makeToken(TokenSlash, "/"), nil
	case '%':
		return l.makeToken(TokenPercent, "%"), nil
	case '>':
		return l.makeToken(TokenGreater, ">"), nil
	case '=':
		return l.makeToken(TokenAssign, "="), nil

	case '-':
		// -5px is a negative number, -active a BEM suffix class,
		// and a lone '-' the subtraction operator.
		if isDigit(l.peek()) {
			l.advance()
			return l.scanNumber(), nil
		}
		if isLetter(l.peek()) || l.peek() == '-' {
			return l.scanIdentifier()
		}
		return l.makeToken(TokenMinus, "-"), nil

	case '*':
		if l.match('=') {
			return l.makeToken(TokenContainsEq, "*="), nil
		}
		return l.makeToken(TokenStar, "*"), nil

	case '~':
		if l.match('=') {
			return l.makeToken(TokenIncludesEq, "~="), nil
		}
		return l.makeToken(TokenTilde, "~"), nil

	case '<':
		if l.match('<') {
			return l.makeToken(TokenShl, "<<"), nil
		}
		return l.makeToken(TokenLess, "<"), nil

	case '^':
		if l.match('=') {
			return l.makeToken(TokenPrefixEq, "^="), nil
		}
		return l.makeToken(TokenInvalid, ""), l.error("expected '=' after '^'")

	case '|':
		if l.match('=') {
			return l.makeToken(TokenDashEq, "|="), nil
		}
		return l.makeToken(TokenInvalid, ""), l.error("expected '=' after '|'")

	case '#':
		if !l.scanName() {
			return l.makeToken(TokenInvalid, ""), l.error("expected a name after '#'")
		}
		return l.makeToken(TokenHash, l.source[l.start:l.current]), nil

	case '$':
		if !l.scanName() {
			return l.makeToken(TokenInvalid, ""), l.error("expected a variable name after '$'")
		}
		return l.makeToken(TokenReference, l.source[l.start:l.current]), nil

	case '@':
		tokenType := TokenAt
		if l.match('@') {
			tokenType = TokenAtAt
		}
		if !l.scanName() {
			return l.makeToken(TokenInvalid, ""), l.error("expected a directive name after '@'")
		}
		return l.makeToken(tokenType, l.source[l.start:l.current]), nil

	case '!':
		if !l.scanName() {
			return l.makeToken(TokenInvalid, ""), l.error("expected a name after '!'")
		}
		text := l.source[l.start:l.current]
		if text == "!important" {
			return l.makeToken(TokenImportant, text), nil
		}
		return l.makeToken(TokenBang, text), nil

	case '"', '\'':
		return l.scanString(ch)

	case '`':
		return l.scanRawString()

	default:
		return l.makeToken(TokenInvalid, ""),
			l.error(fmt.Sprintf("unexpected character: %q", ch))
	}
}

func (l *Lexer) advance() (rune, int) {
	if l.isAtEnd() {
		return 0, 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch, size
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	if ch != expected {
		return false
	}
	l.current += size
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// scanName consumes name characters and reports whether there was any.
func (l *Lexer) scanName() bool {
	from := l.current
	for !l.isAtEnd() && isNameChar(l.peek()) {
		l.advance()
	}
	return l.current > from
}

// scanIdentifier scans a name. The keyword "url" directly followed by '('
// starts a raw URL token.
//
// RULES:
// - Starts with a letter, '_' or '-'
// - Continues with letters, digits, '_' or '-'
// - Examples: div, font-size, btn-, -active, -webkit-transform
func (l *Lexer) scanIdentifier() (Token, error) {
	l.scanName()
	text := l.source[l.start:l.current]
	if text == "url" && l.peek() == '(' {
		return l.scanURL()
	}
	return l.makeToken(TokenIdent, text), nil
}

// scanNumber scans digits with an optional fraction. Units are separate
// tokens that the parser glues on when they touch the number.
func (l *Lexer) scanNumber() Token {
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.makeToken(TokenNumber, l.source[l.start:l.current])
}

// scanString scans a quoted string; escapes are kept verbatim.
func (l *Lexer) scanString(quote rune) (Token, error) {
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == quote {
			return l.makeToken(TokenString, l.source[l.start:l.current]), nil
		}
		if ch == '\\' {
			l.advance()
		}
	}
	return l.makeToken(TokenInvalid, ""), l.error("unterminated string literal")
}

// scanRawString scans a backquoted string, which has no escapes.
func (l *Lexer) scanRawString() (Token, error) {
	for !l.isAtEnd() {
		if ch, _ := l.advance(); ch == '`' {
			return l.makeToken(TokenRawString, l.source[l.start:l.current]), nil
		}
	}
	return l.makeToken(TokenInvalid, ""), l.error("unterminated raw string")
}

// scanURL scans url(...) with balanced parentheses. The token lexeme is the
// text inside the parentheses.
func (l *Lexer) scanURL() (Token, error) {
	l.advance() // (
	from := l.current
	depth := 1
	for !l.isAtEnd() {
		ch, _ := l.advance()
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				tok := l.makeToken(TokenURL, l.source[from:l.current-1])
				tok.Length = l.current - l.start
				return tok, nil
			}
		}
	}
	return l.makeToken(TokenInvalid, ""), l.error("unterminated url(")
}

func (l *Lexer) makeToken(tokenType TokenType, lexeme string) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   lexeme,
		Position: l.currentPosition(),
		Length:   l.current - l.start,
	}
}

func (l *Lexer) currentPosition() Position {
	return l.base.Advance(utf8.RuneCountInString(l.source[:l.start]), l.start)
}

func (l *Lexer) error(message string) error {
	pos := l.currentPosition()
	return &errors.SyntaxError{
		File:    pos.Filename,
		Line:    pos.Line,
		Column:  pos.Column,
		Excerpt: l.raw,
		Msg:     message,
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isNameChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-'
}

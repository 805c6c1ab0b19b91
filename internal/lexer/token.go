package lexer

// TokenType represents the type of a token.
type TokenType int

// Token type enumeration.
//
// ORGANIZATION:
// 1. Special tokens (EOF, Invalid, Space)
// 2. Literals and names
// 3. Operators and combinators
// 4. Delimiters
const (
	// Special tokens

	// TokenEOF marks the end of the line being tokenized.
	TokenEOF TokenType = iota

	// TokenInvalid represents a lexical error.
	TokenInvalid

	// TokenSpace is a run of blanks inside a line. Whitespace is significant
	// in PCSS: it is the descendant combinator in selectors, the separator
	// of space lists, and part of the "- " infix operator.
	TokenSpace

	// Literals and names

	// TokenIdent is a name: node names, property names, bare words, BEM
	// prefix ("btn-") and suffix ("-active") classes.
	TokenIdent

	// TokenNumber is a numeric literal without its unit: 10, 0.5, -3.
	TokenNumber

	// TokenHash is '#' followed by name characters: an id selector or a
	// hex color, depending on context.
	TokenHash

	// TokenString is a quoted string including its quotes: "x" or 'x'.
	TokenString

	// TokenRawString is a backquoted string including its quotes.
	TokenRawString

	// TokenReference is a variable reference: $name.
	TokenReference

	// TokenAt is a directive keyword: @import, @macro, ...
	TokenAt

	// TokenAtAt is a raw CSS directive: @@charset.
	TokenAtAt

	// TokenURL is url(...); the lexeme is the text between the parens.
	TokenURL

	// TokenBang is a state suffix: !open.
	TokenBang

	// TokenImportant is !important.
	TokenImportant

	// Operators and combinators

	TokenPlus    // +
	TokenMinus   // - (not followed by a digit)
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %
	TokenGreater // >
	TokenTilde   // ~
	TokenLess    // <
	TokenShl     // <<
	TokenAmp     // &
	TokenAssign  // =

	// attribute operators
	TokenPrefixEq   // ^=
	TokenIncludesEq // ~=
	TokenContainsEq // *=
	TokenDashEq     // |=

	// Delimiters

	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenComma        // ,
	TokenDot          // .
	TokenColon        // :
	TokenSemicolon    // ;
)

// Token represents a single lexical token.
type Token struct {
	// Type is the kind of token.
	Type TokenType

	// Lexeme is the source text of the token. For TokenURL it is the raw
	// text between the parentheses.
	Lexeme string

	// Position is where this token appears in the source.
	Position Position

	// Length is the length of the token in bytes.
	Length int
}

// String returns "TYPE(lexeme) at position".
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// Span returns the source span covered by this token.
func (t Token) Span() Span {
	return Span{
		Start: t.Position,
		End:   t.End(),
	}
}

// End returns the position right after the token.
func (t Token) End() Position {
	return t.Position.Advance(runeCount(t.Lexeme), t.Length)
}

func runeCount(s string) int {
	count := 0
	for range s {
		count++
	}
	return count
}

// String returns the string representation of a token type.
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenInvalid:
		return "INVALID"
	case TokenSpace:
		return "SPACE"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "NUMBER"
	case TokenHash:
		return "HASH"
	case TokenString:
		return "STRING"
	case TokenRawString:
		return "RAW_STRING"
	case TokenReference:
		return "REFERENCE"
	case TokenAt:
		return "AT"
	case TokenAtAt:
		return "AT_AT"
	case TokenURL:
		return "URL"
	case TokenBang:
		return "BANG"
	case TokenImportant:
		return "IMPORTANT"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenGreater:
		return ">"
	case TokenTilde:
		return "~"
	case TokenLess:
		return "<"
	case TokenShl:
		return "<<"
	case TokenAmp:
		return "&"
	case TokenAssign:
		return "="
	case TokenPrefixEq:
		return "^="
	case TokenIncludesEq:
		return "~="
	case TokenContainsEq:
		return "*="
	case TokenDashEq:
		return "|="
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenComma:
		return ","
	case TokenDot:
		return "."
	case TokenColon:
		return ":"
	case TokenSemicolon:
		return ";"
	default:
		return "UNKNOWN"
	}
}

// IsInfixOperator reports whether the token can join two expressions.
// TokenMinus only counts when followed by whitespace; the parser checks that.
func (tt TokenType) IsInfixOperator() bool {
	switch tt {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent:
		return true
	}
	return false
}

// IsCombinator reports whether the token links two selectors.
func (tt TokenType) IsCombinator() bool {
	switch tt {
	case TokenGreater, TokenPlus, TokenTilde, TokenLess, TokenShl:
		return true
	}
	return false
}

// IsAttributeOperator reports whether the token compares an attribute value.
func (tt TokenType) IsAttributeOperator() bool {
	switch tt {
	case TokenAssign, TokenPrefixEq, TokenIncludesEq, TokenContainsEq, TokenDashEq:
		return true
	}
	return false
}

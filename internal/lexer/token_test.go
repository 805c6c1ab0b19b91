package lexer

import "testing"

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		want      string
	}{
		{TokenEOF, "EOF"},
		{TokenSpace, "SPACE"},
		{TokenIdent, "IDENT"},
		{TokenShl, "<<"},
		{TokenIncludesEq, "~="},
		{TokenType(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenType_Classes(t *testing.T) {
	if !TokenMinus.IsInfixOperator() || TokenGreater.IsInfixOperator() {
		t.Errorf("unexpected infix classification")
	}
	if !TokenPlus.IsCombinator() || !TokenShl.IsCombinator() || TokenStar.IsCombinator() {
		t.Errorf("unexpected combinator classification")
	}
	if !TokenDashEq.IsAttributeOperator() || TokenTilde.IsAttributeOperator() {
		t.Errorf("unexpected attribute operator classification")
	}
}

func TestToken_Span(t *testing.T) {
	tok := Token{
		Type:     TokenIdent,
		Lexeme:   "color",
		Position: Position{Filename: "a.pcss", Line: 2, Column: 2, Offset: 5},
		Length:   5,
	}
	span := tok.Span()
	if span.End.Column != 7 || span.End.Offset != 10 {
		t.Errorf("Span().End = %+v, want column 7 offset 10", span.End)
	}
	if got := tok.String(); got != "IDENT(color) at a.pcss:2:2" {
		t.Errorf("String() = %q", got)
	}
}

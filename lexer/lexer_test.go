package lexer

import (
	"testing"

	"jal/token"
)

func TestNextTokenBasicProgram(t *testing.T) {
	source := `let x := 2 + 3 * 4
// a comment
fn add(a:int, b:int):int { return a + b }
`
	expected := []token.Kind{
		token.LET, token.IDENTIFIER, token.WALRUS, token.NUMBER_INT, token.PLUS, token.NUMBER_INT, token.STAR, token.NUMBER_INT,
		token.FN, token.IDENTIFIER, token.PAREN_OPEN, token.IDENTIFIER, token.COLON, token.TYPE_INT, token.COMMA,
		token.IDENTIFIER, token.COLON, token.TYPE_INT, token.PAREN_CLOSE, token.COLON, token.TYPE_INT,
		token.BRACE_OPEN, token.RETURN, token.IDENTIFIER, token.PLUS, token.IDENTIFIER, token.BRACE_CLOSE,
		token.EOF,
	}

	l := New("test.jal", source)
	tokens := l.Tokenize()

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(tokens), tokens)
	}
	for i, kind := range expected {
		if tokens[i].Kind != kind {
			t.Fatalf("token %d: expected kind %s, got %s (%q)", i, kind, tokens[i].Kind, tokens[i].Text)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"==", token.EQ},
		{"!=", token.NEQ},
		{"<=", token.LTE},
		{">=", token.GTE},
		{"<<", token.LIST_PUSH},
		{":=", token.WALRUS},
	}
	for _, c := range cases {
		l := New("t.jal", c.src)
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Errorf("source %q: expected %s, got %s", c.src, c.kind, tok.Kind)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New("t.jal", `"hello world"`)
	tok := l.NextToken()
	if tok.Kind != token.STRING || tok.Text != "hello world" {
		t.Fatalf("unexpected string token: %+v", tok)
	}
}

func TestFloatVsIntLiteral(t *testing.T) {
	l := New("t.jal", "42 3.14")
	first := l.NextToken()
	second := l.NextToken()
	if first.Kind != token.NUMBER_INT || first.Text != "42" {
		t.Errorf("expected int literal 42, got %+v", first)
	}
	if second.Kind != token.NUMBER_FLT || second.Text != "3.14" {
		t.Errorf("expected float literal 3.14, got %+v", second)
	}
}

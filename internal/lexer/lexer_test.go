package lexer

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/token"
)

func TestTokenizeBasics(t *testing.T) {
	input := "let x = 5\nx = x + 10"

	tests := []struct {
		lexeme string
		typ    token.Type
	}{
		{"let", token.LET},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"5", token.NUMBER},
		{"\n", token.NEWLINE},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{"", token.EOF},
	}

	toks, err := New(input, "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if len(toks) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(tests), len(toks), toks)
	}
	for i, tt := range tests {
		if toks[i].Type != tt.typ {
			t.Errorf("token[%d] type = %v, want %v (lexeme %q)", i, toks[i].Type, tt.typ, toks[i].Lexeme)
		}
		if toks[i].Lexeme != tt.lexeme {
			t.Errorf("token[%d] lexeme = %q, want %q", i, toks[i].Lexeme, tt.lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "conduit give stop next check repeat grab share wait async make extend build me parent"

	want := []token.Type{
		token.CONDUIT, token.GIVE, token.STOP, token.NEXT, token.CHECK, token.REPEAT,
		token.GRAB, token.SHARE, token.WAIT, token.ASYNC, token.MAKE, token.EXTEND,
		token.BUILD, token.ME, token.PARENT, token.EOF,
	}

	toks, err := New(input, "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Type, typ)
		}
	}
}

func TestGetSetAreContextualNotKeywords(t *testing.T) {
	toks, err := New("get set", "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if toks[0].Type != token.IDENT || toks[1].Type != token.IDENT {
		t.Fatalf("expected get/set to lex as identifiers, got %v %v", toks[0].Type, toks[1].Type)
	}
}

func TestOperators(t *testing.T) {
	input := "-> ~> => :: .. ... ?? ?. ?~ == != <= >= ** += -= *= /="
	want := []token.Type{
		token.PIPELINE, token.ASYNC_PIPELINE, token.ARROW, token.DOUBLE_COLON,
		token.RANGE, token.SPREAD, token.NULL_COALESCE, token.SAFE_NAV, token.SAFE_INDEX,
		token.EQ, token.NE, token.LE, token.GE, token.POWER,
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.EOF,
	}

	toks, err := New(input, "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Type, typ)
		}
	}
}

func TestBraceAndBracketDelimiters(t *testing.T) {
	toks, err := New("@ # ~ !", "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	want := []token.Type{token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET, token.EOF}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Type, typ)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, err := New(`"a\nb\tc"`, "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Lexeme != "a\nb\tc" {
		t.Fatalf("got %q, want %q", toks[0].Lexeme, "a\nb\tc")
	}
}

func TestTemplateStringInterpolation(t *testing.T) {
	toks, err := New("`hi $@name#!`", "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []token.Type{token.STRING, token.INTERP_START, token.IDENT, token.INTERP_END, token.STRING, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got token types %v, want %v", types, want)
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("token[%d] = %v, want %v", i, types[i], typ)
		}
	}
}

func TestNumberForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0xFF", "0xFF"},
		{"0b1010", "0b1010"},
		{"1_000", "1000"},
		{"3.14", "3.14"},
		{"2e10", "2e10"},
		{"2e-10", "2e-10"},
	}
	for _, tt := range tests {
		toks, err := New(tt.input, "test").Tokenize()
		if err != nil {
			t.Fatalf("Tokenize(%q) returned an error: %v", tt.input, err)
		}
		if toks[0].Type != token.NUMBER || toks[0].Lexeme != tt.want {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, toks[0].Lexeme, tt.want)
		}
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := New(`"unterminated`, "test").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestUnrecognisedCharacterIsAnError(t *testing.T) {
	_, err := New("^", "test").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unrecognised character")
	}
}

func TestColumnCountsRunesNotBytes(t *testing.T) {
	toks, err := New("Δx = 1", "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize returned an error: %v", err)
	}
	if toks[1].Column != 4 {
		t.Errorf("'=' column = %d, want 4", toks[1].Column)
	}
}

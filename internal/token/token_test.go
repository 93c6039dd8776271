package token_test

import (
	"testing"

	"rbfmt/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for text, want := range map[string]token.Kind{
		"def": token.KwDef, "end": token.KwEnd, "defined?": token.KwDefined, "unless": token.KwUnless,
	} {
		got, ok := token.LookupKeyword(text)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", text, got, ok, want)
		}
	}
	if _, ok := token.LookupKeyword("End"); ok {
		t.Fatal("keywords must be case sensitive")
	}
}

func TestKindPredicates(t *testing.T) {
	if !token.KwYield.IsKeyword() || token.Plus.IsKeyword() {
		t.Fatal("IsKeyword range is wrong")
	}
	if !token.Heredoc.IsLiteral() || token.Ident.IsLiteral() {
		t.Fatal("IsLiteral is wrong")
	}
	if !token.Comma.BeginsExpression() || token.RParen.BeginsExpression() {
		t.Fatal("BeginsExpression is wrong")
	}
	if got := token.KwDef.String(); got != "Kw(def)" {
		t.Fatalf("String = %q", got)
	}
	if got := token.LBrace.String(); got != "LBrace" {
		t.Fatalf("String = %q", got)
	}
}

func TestTokenIs(t *testing.T) {
	tok := token.Token{Kind: token.Comma}
	if !tok.Is(token.Semicolon, token.Comma) || tok.Is(token.Dot) {
		t.Fatal("Is mismatch")
	}
}

package token

import (
	"testing"

	"github.com/connerohnesorge/turniptext/internal/span"
)

func TestType_String(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{EOF, "EOF"},
		{Newline, "Newline"},
		{Escaped, "Escaped"},
		{Hashes, "Hashes"},
		{CodeOpen, "CodeOpen"},
		{CodeClose, "CodeClose"},
		{ScopeOpen, "ScopeOpen"},
		{ScopeClose, "ScopeClose"},
		{RawScopeOpen, "RawScopeOpen"},
		{RawScopeClose, "RawScopeClose"},
		{Hyphens, "Hyphens"},
		{OtherText, "OtherText"},
		{Type(255), "Unknown"},
	}

	for _, tt := range cases {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestToken_Text(t *testing.T) {
	tok := Token{Type: OtherText, Bytes: []byte("hello world")}
	if got := tok.Text(); got != "hello world" {
		t.Fatalf("Text() = %q, want %q", got, "hello world")
	}
}

func TestToken_IsFence(t *testing.T) {
	fenced := []Type{CodeOpen, CodeClose, RawScopeOpen, RawScopeClose, Hashes, Hyphens}
	for _, typ := range fenced {
		tok := Token{Type: typ, N: 2}
		if !tok.IsFence() {
			t.Errorf("Token{Type: %s}.IsFence() = false, want true", typ)
		}
	}

	unfenced := []Type{EOF, Newline, Escaped, ScopeOpen, ScopeClose, OtherText}
	for _, typ := range unfenced {
		tok := Token{Type: typ}
		if tok.IsFence() {
			t.Errorf("Token{Type: %s}.IsFence() = true, want false", typ)
		}
	}
}

func TestToken_SpanRoundTrip(t *testing.T) {
	tok := Token{
		Type:  CodeOpen,
		Span:  span.Span{Source: 1, Start: 4, End: 6},
		Bytes: []byte("[-"),
		N:     1,
	}
	if tok.Span.Len() != 2 {
		t.Fatalf("Span.Len() = %d, want 2", tok.Span.Len())
	}
	if !tok.IsFence() || tok.N != 1 {
		t.Fatalf("expected fenced CodeOpen with N=1, got IsFence=%v N=%d", tok.IsFence(), tok.N)
	}
}

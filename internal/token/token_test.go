package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"struct", KwStruct, true},
		{"where", KwWhere, true},
		{"Self", KwSelfType, true},
		{"self", KwSelfValue, true},
		{"Struct", Invalid, false},
		{"Vec", Invalid, false},
		{"dyn", KwDyn, true},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		ColonColon: "::",
		KwStruct:   "struct",
		Ident:      "Ident",
		Lifetime:   "Lifetime",
		DotDotEq:   "..=",
		Kind(250):  "Unknown",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: KwTrue}).IsLiteral() {
		t.Error("true must be a literal")
	}
	if !(Token{Kind: KwUnion}).IsKeyword() || (Token{Kind: Ident}).IsKeyword() {
		t.Error("IsKeyword mismatch")
	}
	if close, ok := LBracket.Closing(); !ok || close != RBracket {
		t.Errorf("Closing(LBracket) = %v,%v", close, ok)
	}
	if !(Token{Kind: RawStringLit}).IsStringLike() {
		t.Error("raw strings are string-like")
	}
}

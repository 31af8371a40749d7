package token

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Invalid, "Invalid"},
		{EOF, "EOF"},
		{Ident, "Ident"},
		{KwVal, "KwVal"},
		{IntLit, "IntLit"},
		{StringLit, "StringLit"},
		{Arrow, "Arrow"},
		{RParen, "RParen"},
		{kindCount, "Kind(?)"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		in     string
		want   Kind
		wantOk bool
	}{
		{"val", KwVal, true},
		{"fn", KwFn, true},
		{"true", KwTrue, true},
		{"false", KwFalse, true},
		{"value", Ident, false},
		{"Int", Ident, false},
		{"", Ident, false},
	}
	for _, tc := range cases {
		got, ok := LookupKeyword(tc.in)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("LookupKeyword(%q) = (%v, %v), want (%v, %v)",
				tc.in, got, ok, tc.want, tc.wantOk)
		}
	}
}

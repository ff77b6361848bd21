package model

import "testing"

func TestInternName(t *testing.T) {
	if got := InternName("Type"); got != Name("Type") {
		t.Fatalf("InternName(Type) = %q", got)
	}
	if got := InternName("NotAStandardNameXYZ"); got != Name("NotAStandardNameXYZ") {
		t.Fatalf("non-standard name mangled: %q", got)
	}
}

func TestInternNameSharesStandardInstances(t *testing.T) {
	a := InternName(string([]byte{'F', 'o', 'n', 't'}))
	b := InternName(string([]byte{'F', 'o', 'n', 't'}))
	if a != b || a != "Font" {
		t.Fatalf("interning broken: %q %q", a, b)
	}
}

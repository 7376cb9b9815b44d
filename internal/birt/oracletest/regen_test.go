package oracletest

import (
	"strings"
	"testing"
)

func TestRegenerate(t *testing.T) {
	code, err := Regenerate("")
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	for _, want := range []string{"CallGraphMock", "HasUnknownCallsites", "KnownStores"} {
		if !strings.Contains(code, want) {
			t.Errorf("generated mock missing %q", want)
		}
	}
}

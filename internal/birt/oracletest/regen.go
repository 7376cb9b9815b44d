package oracletest

import (
	"github.com/orizon-lang/orizon/internal/testrunner/mockgen"
)

// Regenerate re-derives a struct-stub test double for oracle.CallGraph
// straight from its source via go/packages, the same machinery
// internal/testrunner/mockgen already uses for every other mocked
// interface in this module. mock_callgraph.go is a hand-authored,
// gomock-flavored double kept for expectation-heavy tests; this one
// backs the lighter call sites (the CLI demonstrator's dry-run mode)
// that only need canned return values, not call verification. Called
// from TestRegenerate to keep the checked-in stub honest against the
// live CallGraph interface.
func Regenerate(dest string) (string, error) {
	return mockgen.Generate(mockgen.GenOptions{
		InterfaceName:  "CallGraph",
		PackageName:    "oracletest",
		Destination:    dest,
		SourcePatterns: []string{"github.com/orizon-lang/orizon/internal/birt/oracle"},
	})
}

package typeinfer

import "sync/atomic"

// Stats holds the pass's two observable counters: how many
// instructions' inferred type differed from their pre-pass value, and
// how many LoadProperty results were backed by exactly one qualifying
// store. Safe for concurrent use so the errgroup-based per-module
// driver can share one instance.
type Stats struct {
	NumTI              int64
	UniquePropertyValue int64
}

func (s *Stats) incNumTI()              { atomic.AddInt64(&s.NumTI, 1) }
func (s *Stats) incUniquePropertyValue() { atomic.AddInt64(&s.UniquePropertyValue, 1) }

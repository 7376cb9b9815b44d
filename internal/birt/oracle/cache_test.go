package oracle

import (
	"sync"
	"testing"

	"github.com/orizon-lang/orizon/internal/birt/ir"
)

func TestCacheGetReturnsSameInstanceForSameModuleName(t *testing.T) {
	c := NewCache()
	m := ir.NewModule("m")

	first, err := c.Get(m)
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	second, err := c.Get(m)
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	if first != second {
		t.Errorf("expected Get to return the cached oracle on the second call")
	}
}

func TestCacheGetCollapsesConcurrentBuilds(t *testing.T) {
	c := NewCache()
	m := ir.NewModule("shared")

	const n = 16
	results := make([]*Simple, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			s, err := c.Get(m)
			if err != nil {
				t.Errorf("Get returned an error: %v", err)
				return
			}
			results[i] = s
		}()
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Errorf("expected every concurrent Get to observe the same built oracle")
		}
	}
}

func TestCacheInvalidateForcesRebuild(t *testing.T) {
	c := NewCache()
	m := ir.NewModule("m")

	first, err := c.Get(m)
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	c.Invalidate(m.Name)
	second, err := c.Get(m)
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}

	if first == second {
		t.Errorf("expected Invalidate to force a fresh Build on the next Get")
	}
}

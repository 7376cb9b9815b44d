package oracle

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/orizon-lang/orizon/internal/birt/ir"
)

// Cache memoizes Build(m) keyed by module name, coalescing concurrent
// rebuild requests the way HTTPRegistry coalesces repeated lookups with
// its own singleflight.Group. Intended for a long-lived driver (the
// CLI's -watch mode, or RunModuleConcurrently's per-module fan-out)
// that may ask for the same module's oracle from more than one
// goroutine: Invalidate must be called whenever the module's functions
// change shape, since Cache never compares module contents itself.
//
// mu guards built directly; sf only collapses concurrent misses into a
// single Build call, it does not make the map itself safe to read
// without a lock.
type Cache struct {
	mu    sync.RWMutex
	sf    singleflight.Group
	built map[string]*Simple
}

// NewCache returns an empty oracle cache.
func NewCache() *Cache {
	return &Cache{built: map[string]*Simple{}}
}

// Get returns the cached oracle for m, building it at most once even
// under concurrent callers racing on the same module name.
func (c *Cache) Get(m *ir.Module) (*Simple, error) {
	c.mu.RLock()
	s, ok := c.built[m.Name]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := c.sf.Do(m.Name, func() (interface{}, error) {
		s := Build(m)
		c.mu.Lock()
		c.built[m.Name] = s
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Simple), nil
}

// Invalidate drops the cached oracle for name, forcing the next Get to
// rebuild it.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.built, name)
	c.mu.Unlock()
}

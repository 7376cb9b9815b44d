package typeinfer

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/oracle"
)

// RunModuleConcurrently fans modules out across an errgroup, the same
// pattern internal/packagemanager/manager.go uses to parallelize
// independent per-package work. Modules are the independent unit here,
// not functions: within a single module, inferCallLike reads a
// callee's Function.Type() — an unsynchronized field — while that
// callee's own function body may still be getting its type annotations
// written, so a module's functions are always run on one goroutine, in
// order, via runModule. Two different modules share no such state and
// may run fully concurrently.
//
// cache collapses duplicate oracle builds when the same module (by
// name) is passed in more than once, the way a long-lived driver might
// re-submit a module it already has an oracle for.
//
// A single *Stats passed via opts.Stats is safe to share (its counters
// are atomic); a nil Trace logger is also safe to share since
// cli.Logger buffers nothing per-call.
func RunModuleConcurrently(ctx context.Context, modules []*ir.Module, opts Options) (bool, error) {
	cache := oracle.NewCache()

	var anyChanged atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range modules {
		m := m
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			cgp, err := cache.Get(m)
			if err != nil {
				return err
			}
			if runModule(m, cgp, opts) {
				anyChanged.Store(true)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}
	return anyChanged.Load(), nil
}

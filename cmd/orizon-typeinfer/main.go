// Package main is the CLI demonstrator for the birt type-inference
// pass: it runs the pass over a small built-in demo module (real IR
// ingestion is a frontend's job, not this pass's) and prints the
// inferred type of every instruction, optionally re-running on every
// change to a watched directory.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/fsnotify/fsnotify"

	"github.com/orizon-lang/orizon/internal/birt/demo"
	"github.com/orizon-lang/orizon/internal/birt/ir"
	"github.com/orizon-lang/orizon/internal/birt/typeinfer"
	"github.com/orizon-lang/orizon/internal/cli"
)

// irFormatVersion is the version of the in-memory birt/ir shape this
// build understands. Bumped whenever Kind, Value, or Instruction gain
// or lose a field in a way that changes a serialized IR's meaning.
const irFormatVersion = "1.0.0"

var (
	version = "0.1.0-alpha"
	commit  = "dev"
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "show version information")
		module       = flag.String("module", "arithmetic", "built-in demo module: arithmetic|loop (ignored with -concurrent)")
		verbose      = flag.Bool("verbose", false, "enable info logging")
		debug        = flag.Bool("debug", false, "enable debug tracing of type changes")
		strict       = flag.Bool("strict", false, "enable debug-mode invariant assertions")
		concurrent   = flag.Bool("concurrent", false, "run every built-in demo module through an errgroup fan-out, one goroutine per module")
		watchDir     = flag.String("watch", "", "re-run the pass whenever this directory changes")
		requireIRVer = flag.String("require-ir-version", "", "fail unless the running build satisfies this IR-format constraint")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("orizon-typeinfer v%s (%s), ir-format %s\n", version, commit, irFormatVersion)
		return
	}

	logger := cli.NewLogger(*verbose, *debug)

	if *requireIRVer != "" {
		if err := checkIRFormatCompat(*requireIRVer); err != nil {
			cli.ExitWithError("%v", err)
		}
	}

	opts := typeinfer.Options{Strict: *strict, Trace: logger, Stats: &typeinfer.Stats{}}

	run := func() {
		if *concurrent {
			modules := []*ir.Module{demo.Arithmetic(), demo.LoopCounter()}
			changed, err := typeinfer.RunModuleConcurrently(context.Background(), modules, opts)
			if err != nil {
				logger.Error("run failed: %v", err)
				return
			}
			for _, m := range modules {
				printModule(m, changed, opts.Stats)
			}
			return
		}

		m := loadDemoModule(*module)
		changed := typeinfer.Run(m, opts)
		printModule(m, changed, opts.Stats)
	}

	run()

	if *watchDir == "" {
		return
	}

	if err := watchAndRerun(*watchDir, logger, run); err != nil {
		cli.ExitWithError("watch failed: %v", err)
	}
}

func loadDemoModule(name string) *ir.Module {
	switch name {
	case "loop":
		return demo.LoopCounter()
	default:
		return demo.Arithmetic()
	}
}

func printModule(m *ir.Module, changed bool, stats *typeinfer.Stats) {
	fmt.Printf("module %s (changed=%t, numTI=%d, uniquePropertyValue=%d)\n",
		m.Name, changed, stats.NumTI, stats.UniquePropertyValue)
	for _, f := range m.Functions {
		fmt.Printf("function %s -> %s\n", f.Name, f.Type())
		for _, b := range f.Blocks {
			fmt.Printf("  block %s\n", b.Name)
			for _, inst := range b.Instructions {
				fmt.Printf("    %s = %s : %s\n", inst.Name(), inst.Kind(), inst.Type())
			}
		}
	}
}

// checkIRFormatCompat verifies the running build's irFormatVersion
// satisfies constraint, the same semver.NewConstraint/Check pattern
// internal/packagemanager uses to resolve a dependency version.
func checkIRFormatCompat(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid --require-ir-version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(irFormatVersion)
	if err != nil {
		return fmt.Errorf("internal: bad irFormatVersion %q: %w", irFormatVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("this build's IR format %s does not satisfy %s", irFormatVersion, constraint)
	}
	return nil
}

// watchAndRerun watches dir for filesystem events and invokes rerun on
// each one, following internal/runtime/vfs's FSNotifyWatcher wiring of
// fsnotify.Watcher's Events/Errors channels.
func watchAndRerun(dir string, logger *cli.Logger, rerun func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watching %s for changes", dir)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Debug("fs event: %s", ev)
			rerun()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

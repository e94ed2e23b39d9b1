// Package prof wires the standard Go profilers into replay runs.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiles names the output files of the profilers to enable. Empty paths
// leave the corresponding profiler off.
type Profiles struct {
	CPU   string // pprof CPU samples
	Mem   string // heap profile, captured at stop time
	Trace string // runtime execution trace
}

func (p Profiles) enabled() bool {
	return p.CPU != "" || p.Mem != "" || p.Trace != ""
}

// Start enables the requested profilers and returns a stop function that
// finishes them in reverse order. The stop function is safe to call more
// than once. When nothing is requested the returned stop is a no-op.
func Start(p Profiles) (func() error, error) {
	if !p.enabled() {
		return func() error { return nil }, nil
	}

	var stack []func() error

	if p.CPU != "" {
		f, err := os.Create(p.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		stack = append(stack, func() error {
			pprof.StopCPUProfile()
			return f.Close()
		})
	}

	if p.Trace != "" {
		f, err := os.Create(p.Trace)
		if err != nil {
			unwind(stack)
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			unwind(stack)
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		stack = append(stack, func() error {
			trace.Stop()
			return f.Close()
		})
	}

	if p.Mem != "" {
		path := p.Mem
		stack = append(stack, func() error { return writeHeap(path) })
	}

	stopped := false
	stop := func() error {
		if stopped {
			return nil
		}
		stopped = true
		var firstErr error
		for i := len(stack) - 1; i >= 0; i-- {
			if err := stack[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
	return stop, nil
}

func unwind(stack []func() error) {
	for i := len(stack) - 1; i >= 0; i-- {
		_ = stack[i]()
	}
}

// writeHeap captures a heap profile after forcing a collection, so the
// snapshot reflects live objects rather than garbage.
func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("heap profile: %w", err)
	}
	return f.Close()
}

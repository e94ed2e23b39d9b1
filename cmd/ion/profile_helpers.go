package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ion/internal/prof"
)

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. It returns a cleanup function that is safe to call
// multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	stop, err := prof.Start(prof.Profiles{
		CPU:   cpuProfile,
		Mem:   memProfile,
		Trace: tracePath,
	})
	if err != nil {
		return nil, err
	}

	cleanup := func() {
		if err := stop(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to stop profiling: %v\n", err)
		}
	}
	return cleanup, nil
}

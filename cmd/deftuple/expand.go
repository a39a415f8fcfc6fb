package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/driver"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.tup|directory>...",
	Short: "Lower tuple scripts and dump the expanded program",
	Long: `Expand checks the given scripts and prints the lowered program: every
shape use rewritten into its primitive accessor, constructor, updater,
or converter form`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	paths, err := resolveScripts(args)
	if err != nil {
		return err
	}

	result, err := driver.Check(paths, driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics,
		Timings:        timingsFlag(cmd),
	})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	reportDiagnostics(cmd, result.Bag, result.FileSet)
	if err := errIfDirty(result.Bag); err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, core.FormatProgram(result.Program))
	return nil
}

// resolveScripts flattens file and directory arguments into script paths.
func resolveScripts(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if st.IsDir() {
			scripts, lerr := driver.ListScripts(arg)
			if lerr != nil {
				return nil, lerr
			}
			if len(scripts) == 0 {
				return nil, fmt.Errorf("no *.tup files under %s", arg)
			}
			paths = append(paths, scripts...)
			continue
		}
		paths = append(paths, arg)
	}
	return paths, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/driver"
	"github.com/wrachwal/deftuple/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.tup|directory]...",
	Short: "Check and execute tuple scripts",
	Long: `Run checks the given scripts and, when they are clean, executes the
lowered program. With no arguments it runs the project's main script
resolved through tuple.toml.`,
	RunE: runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	paths, err := resolveScriptsOrManifest(args)
	if err != nil {
		return err
	}

	result, err := driver.Run(paths, os.Stdout, driver.RunOptions{
		MaxDiagnostics: maxDiagnostics,
		Timings:        timingsFlag(cmd),
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	reportDiagnostics(cmd, result.Check.Bag, result.Check.FileSet)
	if derr := errIfDirty(result.Check.Bag); derr != nil {
		return derr
	}
	if result.RunErr != nil {
		return fmt.Errorf("runtime error: %s", result.RunErr)
	}
	return nil
}

// manifestMain resolves the project's main script from tuple.toml,
// starting the walk at the working directory.
func manifestMain() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	manifest, found, err := project.Load(wd)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("no script arguments and no %s found from %s upward", project.ManifestName, wd)
	}
	return manifest.MainPath()
}

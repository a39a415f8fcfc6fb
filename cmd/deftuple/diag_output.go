package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/diagfmt"
	"github.com/wrachwal/deftuple/internal/project"
	"github.com/wrachwal/deftuple/internal/source"
)

// useColor resolves the persistent --color flag against the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// reportDiagnostics pretty-prints the bag to stderr when it holds anything.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	opts := diagfmt.PrettyOpts{
		Color:      useColor(cmd, os.Stderr),
		ShowNotes:  true,
		ShowSource: true,
	}
	diagfmt.Pretty(os.Stderr, bag, fs, opts)
}

// errIfDirty converts a bag with errors into a process-failing error.
func errIfDirty(bag *diag.Bag) error {
	if !bag.HasErrors() {
		return nil
	}
	errs := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			errs++
		}
	}
	return fmt.Errorf("aborted with %d error(s)", errs)
}

// maxDiagnosticsFlag resolves --max-diagnostics. An untouched flag defers
// to the project manifest's [check].max_diagnostics when one is set.
func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	flags := cmd.Root().PersistentFlags()
	max, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		return max, nil
	}
	if cfg, ok := manifestCheckConfig(); ok && cfg.MaxDiagnostics > 0 {
		return cfg.MaxDiagnostics, nil
	}
	return max, nil
}

// jobsFlag resolves --jobs the same way, against [check].jobs.
func jobsFlag(cmd *cobra.Command) (int, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return 0, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if cmd.Flags().Changed("jobs") {
		return jobs, nil
	}
	if cfg, ok := manifestCheckConfig(); ok && cfg.Jobs > 0 {
		return cfg.Jobs, nil
	}
	return jobs, nil
}

// manifestCheckConfig loads the nearest manifest's [check] section.
// Best effort: a missing or broken manifest never fails a command that
// was given explicit arguments.
func manifestCheckConfig() (project.CheckConfig, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return project.CheckConfig{}, false
	}
	manifest, found, err := project.Load(wd)
	if err != nil || !found {
		return project.CheckConfig{}, false
	}
	return manifest.Config.Check, true
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false
	}
	return quiet
}

func timingsFlag(cmd *cobra.Command) bool {
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false
	}
	return timings
}

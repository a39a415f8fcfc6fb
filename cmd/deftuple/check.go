package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/driver"
	"github.com/wrachwal/deftuple/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.tup|directory]...",
	Short: "Check tuple scripts without running them",
	Long: `Check loads, parses, and expands the given scripts, reporting every
diagnostic. With no arguments it checks the project's main script
resolved through tuple.toml. Clean results are cached on disk so an
unchanged project checks instantly.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "skip the on-disk check cache")
	checkCmd.Flags().String("cache-dir", "", "override the cache directory")
}

func runCheck(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	paths, err := resolveScriptsOrManifest(args)
	if err != nil {
		return err
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics,
		Timings:        timingsFlag(cmd),
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if !noCache {
		cacheDir, derr := cmd.Flags().GetString("cache-dir")
		if derr != nil {
			return fmt.Errorf("failed to get cache-dir flag: %w", derr)
		}
		var cache *driver.DiskCache
		if cacheDir != "" {
			cache, derr = driver.OpenDiskCacheAt(cacheDir)
		} else {
			cache, derr = driver.OpenDiskCache("deftuple")
		}
		if derr != nil {
			return fmt.Errorf("failed to open check cache: %w", derr)
		}
		opts.Cache = cache
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	var result *driver.CheckResult
	if shouldUseTUI(mode) && !quietFlag(cmd) {
		result, err = checkWithProgress(paths, opts)
	} else {
		result, err = driver.Check(paths, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	reportDiagnostics(cmd, result.Bag, result.FileSet)
	if derr := errIfDirty(result.Bag); derr != nil {
		return derr
	}

	if !quietFlag(cmd) {
		suffix := ""
		if result.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(os.Stdout, "checked %d file(s): %d shape(s), %d statement(s)%s\n",
			result.Stats.Files, result.Stats.Shapes, result.Stats.Stmts, suffix)
	}
	return nil
}

// checkWithProgress runs the check behind a Bubble Tea progress view.
func checkWithProgress(paths []string, opts driver.CheckOptions) (*driver.CheckResult, error) {
	events := make(chan driver.Event, 64)
	opts.Sink = driver.SinkFunc(func(ev driver.Event) { events <- ev })

	type outcome struct {
		result *driver.CheckResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := driver.Check(paths, opts)
		close(events)
		done <- outcome{result, err}
	}()

	model := ui.NewProgressModel("checking", paths, events)
	if _, terr := tea.NewProgram(model).Run(); terr != nil {
		// Drain so the pipeline goroutine can finish.
		for range events {
		}
	}
	out := <-done
	return out.result, out.err
}

// resolveScriptsOrManifest resolves explicit arguments, or falls back to
// the project's main script when none are given.
func resolveScriptsOrManifest(args []string) ([]string, error) {
	if len(args) > 0 {
		return resolveScripts(args)
	}
	main, err := manifestMain()
	if err != nil {
		return nil, err
	}
	return resolveScripts([]string{main})
}

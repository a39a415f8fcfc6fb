package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.tup|directory>",
	Short: "Parse a tuple script or directory",
	Long:  `Parse analyzes a tuple script, or every *.tup file in a directory, and reports what it found`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

type parseSummary struct {
	Path       string `json:"path"`
	Shapes     int    `json:"shapes"`
	Statements int    `json:"statements"`
	Errors     int    `json:"errors"`
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var summaries []parseSummary
	dirty := false

	if st.IsDir() {
		jobs, jerr := jobsFlag(cmd)
		if jerr != nil {
			return jerr
		}
		fs, results, derr := driver.ParseDir(cmd.Context(), path, maxDiagnostics, jobs)
		if derr != nil {
			return fmt.Errorf("parsing failed: %w", derr)
		}
		for _, res := range results {
			summaries = append(summaries, summarizeFile(res.Path, res.Builder, res.FileID, res.Bag.Len()))
			reportDiagnostics(cmd, res.Bag, fs)
			dirty = dirty || res.Bag.HasErrors()
		}
	} else {
		result, perr := driver.Parse(path, maxDiagnostics)
		if perr != nil {
			return fmt.Errorf("parsing failed: %w", perr)
		}
		summaries = append(summaries, summarizeFile(path, result.Builder, result.FileID, result.Bag.Len()))
		reportDiagnostics(cmd, result.Bag, result.FileSet)
		dirty = result.Bag.HasErrors()
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if jerr := enc.Encode(summaries); jerr != nil {
			return jerr
		}
	} else if !quietFlag(cmd) {
		for _, s := range summaries {
			fmt.Fprintf(os.Stdout, "%s: %d shape(s), %d statement(s)\n", s.Path, s.Shapes, s.Statements)
		}
	}

	if dirty {
		return fmt.Errorf("parsing produced errors")
	}
	return nil
}

func summarizeFile(path string, b *ast.Builder, fileID ast.FileID, diags int) parseSummary {
	s := parseSummary{Path: path, Errors: diags}
	if b == nil || !fileID.IsValid() {
		return s
	}
	for _, itemID := range b.Files.Get(fileID).Items {
		if b.Items.Get(itemID).Kind == ast.ItemTuple {
			s.Shapes++
		} else {
			s.Statements++
		}
	}
	return s
}

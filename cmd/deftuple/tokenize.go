package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/diagfmt"
	"github.com/wrachwal/deftuple/internal/driver"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.tup|directory>",
	Short: "Tokenize a tuple script",
	Long:  `Tokenize breaks a tuple script, or every *.tup file in a directory, into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	if st.IsDir() {
		jobs, jerr := jobsFlag(cmd)
		if jerr != nil {
			return jerr
		}
		fs, results, derr := driver.TokenizeDir(cmd.Context(), path, maxDiagnostics, jobs)
		if derr != nil {
			return fmt.Errorf("tokenization failed: %w", derr)
		}
		dirty := false
		for _, res := range results {
			if !quietFlag(cmd) {
				fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
			}
			if werr := writeTokens(format, res.Tokens, fs); werr != nil {
				return werr
			}
			reportDiagnostics(cmd, res.Bag, fs)
			dirty = dirty || res.Bag.HasErrors()
		}
		if dirty {
			return fmt.Errorf("tokenization produced errors")
		}
		return nil
	}

	result, err := driver.Tokenize(path, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if werr := writeTokens(format, result.Tokens, result.FileSet); werr != nil {
		return werr
	}
	reportDiagnostics(cmd, result.Bag, result.FileSet)
	return errIfDirty(result.Bag)
}

func writeTokens(format string, tokens []token.Token, fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	}
}

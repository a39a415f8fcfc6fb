package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show deftuple build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), versionShowFull)
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, full bool) {
	fmt.Fprintf(out, "deftuple %s\n", version.Version)
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:      "deftuple",
		Version:   version.Plain(),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "unknown"
	}
	return v
}

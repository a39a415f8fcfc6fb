package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrachwal/deftuple/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new deftuple project",
	Long: `Initialize a new deftuple project by creating a project manifest
(tuple.toml) and a starter entry point (main.tup). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const starterScript = `tuple point(x = 0, y = 0)

let origin = point({_: 0})
let p = point({x: 3, y: 4})

show point(p)
show point(p, x)
show point(p, {y: 7})
`

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "deftuple-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(manifestPath, []byte(project.Render(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", project.ManifestName, err)
	}

	mainPath := filepath.Join(target, "main.tup")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if werr := os.WriteFile(mainPath, []byte(starterScript), 0o644); werr != nil {
			return fmt.Errorf("failed to write main.tup: %w", werr)
		}
	} else if err != nil {
		return err
	}

	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\ncreated %s\n", manifestPath, mainPath)
	}
	return nil
}

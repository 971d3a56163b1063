package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maciek-pioro/compiler/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new MiNI project",
	Long: `Initialize a new MiNI project by creating a manifest (minic.toml) and a
hello-world program in src/main.mini. If [path|name] is omitted, initializes
the current directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMainMini = `program
{
    int answer;
    answer = 6 * 7;
    write "answer: ";
    write answer;
    write "\n";
}
`

// runInit writes minic.toml and src/main.mini into the target directory. An
// existing manifest is never overwritten; an existing main.mini is kept.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "mini-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if err := project.Write(manifestPath, project.Default(name)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("project already initialized: %s exists", manifestPath)
		}
		return err
	}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %q: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main.mini")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainMini), 0o600); err != nil {
			return fmt.Errorf("failed to write main.mini: %w", err)
		}
		createdMain = true
	}

	if quiet(cmd) {
		return nil
	}
	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized MiNI project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		fmt.Fprintf(out, "  - src/main.mini\n")
	} else {
		fmt.Fprintf(out, "  - src/main.mini (existing)\n")
	}
	return nil
}

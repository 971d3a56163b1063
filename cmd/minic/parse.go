package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maciek-pioro/compiler/internal/diagfmt"
	"github.com/maciek-pioro/compiler/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.mini",
	Short: "Parse a MiNI source file and dump its syntax tree",
	Long: `Parse builds the syntax tree of a file. With --dump the tree is printed
with node ids, source lines and the types resolved for each expression.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("dump", "pretty", "tree dump format (pretty|json|none)")
}

func runParse(cmd *cobra.Command, args []string) error {
	dump, err := cmd.Flags().GetString("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1}
		if err := diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	}
	if !result.OK {
		return errDiagnostics
	}

	switch dump {
	case "pretty":
		return diagfmt.FormatTreePretty(os.Stdout, result.Tree, result.Typing)
	case "json":
		return diagfmt.FormatTreeJSON(os.Stdout, result.Tree, result.Typing)
	case "none":
		if !quiet(cmd) {
			fmt.Fprintln(os.Stdout, "ok")
		}
		return nil
	default:
		return fmt.Errorf("unknown dump format: %s", dump)
	}
}

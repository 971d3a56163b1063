package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maciek-pioro/compiler/internal/driver"
	"github.com/maciek-pioro/compiler/internal/observ"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.mini>",
	Short: "Check a MiNI source file and report diagnostics",
	Long:  `Run the parser and the semantic checks over a file without writing IR`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runDiagnose compiles the file in memory and prints its diagnostics. It
// returns errDiagnostics when any error was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	out, err := driver.Compile(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Timer:          timer,
	})
	if err != nil {
		return err
	}
	if err := printDiagnostics(os.Stdout, out.Diagnostics, out.FileSet, diagOutput{
		format:   format,
		notes:    withNotes,
		fullPath: fullPath,
		color:    useColor(cmd, os.Stdout),
	}); err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if !out.OK {
		return errDiagnostics
	}
	if format == "pretty" && !quiet(cmd) {
		fmt.Fprintln(os.Stdout, "no issues found")
	}
	return nil
}

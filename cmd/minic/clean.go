package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maciek-pioro/compiler/internal/buildpipeline"
	"github.com/maciek-pioro/compiler/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove build output",
	Long:  "Remove the output directory of a project and, with --cache, the IR cache.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("cache", false, "also drop the IR cache")
}

func runClean(cmd *cobra.Command, args []string) error {
	dropCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	base := "."
	if len(args) > 0 && args[0] != "" {
		base = args[0]
	}

	outDir := filepath.Join(base, "target")
	m, ok, err := project.LoadNearest(base)
	if err != nil {
		return err
	}
	if ok {
		outDir = m.OutDir()
	}

	var cache *buildpipeline.DiskCache
	if dropCache {
		if cache, err = buildpipeline.OpenDiskCache(""); err != nil {
			return err
		}
	}

	_, statErr := os.Stat(outDir)
	if err := buildpipeline.Clean(outDir, cache); err != nil {
		return err
	}
	if quiet(cmd) {
		return nil
	}
	out := cmd.OutOrStdout()
	if statErr == nil {
		fmt.Fprintf(out, "removed %s\n", outDir)
	} else {
		fmt.Fprintln(out, "output directory not found")
	}
	if cache != nil {
		fmt.Fprintf(out, "dropped cache %s\n", cache.Dir())
	}
	return nil
}

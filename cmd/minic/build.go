package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maciek-pioro/compiler/internal/buildpipeline"
	"github.com/maciek-pioro/compiler/internal/observ"
	"github.com/maciek-pioro/compiler/internal/project"
	"github.com/maciek-pioro/compiler/internal/ui"
	"github.com/maciek-pioro/compiler/internal/version"
	"github.com/maciek-pioro/compiler/internal/watch"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.mini...]",
	Short: "Compile MiNI sources to LLVM IR",
	Long: `Build compiles each source file into a textual LLVM IR module (.ll).
Without arguments the sources listed in minic.toml are built.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out-dir", "", "directory for .ll files (default: manifest out_dir or ./target)")
	buildCmd.Flags().Int("jobs", 0, "max parallel compilations (0=auto)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the IR cache")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Bool("watch", false, "rebuild when sources change")
	buildCmd.Flags().Bool("emit-stdout", false, "print generated IR to stdout")
	buildCmd.Flags().String("target", "", "target triple written into the module")
	buildCmd.Flags().String("format", "", "diagnostics format (pretty|json|short)")
}

// buildPlan is the resolved input of one build invocation.
type buildPlan struct {
	files      []string
	baseDir    string
	outDir     string
	jobs       int
	target     string
	maxDiags   int
	format     string
	cache      *buildpipeline.DiskCache
	useTUI     bool
	emitStdout bool
	timings    bool
}

func runBuild(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	plan, err := resolveBuildPlan(cmd, args)
	if err != nil {
		return err
	}
	watchMode, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	buildErr := runBuildOnce(ctx, cmd, plan)
	if !watchMode {
		return buildErr
	}

	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "watching %d file(s) for changes, press Ctrl+C to stop\n", len(plan.files))
	}
	return watch.Run(ctx, watch.Dirs(plan.files), watch.Options{
		Match: watch.ExtMatcher(".mini"),
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		},
	}, func(changed []string) {
		if !quiet(cmd) {
			fmt.Fprintf(os.Stderr, "\n%d file(s) changed, rebuilding\n", len(changed))
		}
		// Ошибки сборки уже напечатаны, продолжаем наблюдение
		_ = runBuildOnce(ctx, cmd, plan)
	})
}

func resolveBuildPlan(cmd *cobra.Command, args []string) (buildPlan, error) {
	var plan buildPlan
	flags := cmd.Flags()
	outDir, err := flags.GetString("out-dir")
	if err != nil {
		return plan, fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return plan, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return plan, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return plan, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return plan, err
	}
	if plan.emitStdout, err = flags.GetBool("emit-stdout"); err != nil {
		return plan, fmt.Errorf("failed to get emit-stdout flag: %w", err)
	}
	if plan.target, err = flags.GetString("target"); err != nil {
		return plan, fmt.Errorf("failed to get target flag: %w", err)
	}
	if plan.format, err = flags.GetString("format"); err != nil {
		return plan, fmt.Errorf("failed to get format flag: %w", err)
	}
	if plan.maxDiags, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return plan, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if plan.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return plan, fmt.Errorf("failed to get timings flag: %w", err)
	}

	useCache := !noCache
	if len(args) > 0 {
		plan.files = args
		if plan.baseDir, err = os.Getwd(); err != nil {
			return plan, err
		}
		if outDir == "" {
			outDir = "target"
		}
	} else {
		m, ok, err := project.LoadNearest(".")
		if err != nil {
			return plan, err
		}
		if !ok {
			return plan, fmt.Errorf("no input files and no %s found", project.ManifestName)
		}
		if err := m.CheckCompiler(version.Version); err != nil {
			return plan, err
		}
		if plan.files, err = m.Sources(); err != nil {
			return plan, err
		}
		plan.baseDir = m.Root
		if outDir == "" {
			outDir = m.OutDir()
		}
		if jobs == 0 {
			jobs = m.Build.Jobs
		}
		if plan.target == "" {
			plan.target = m.Build.TargetTriple
		}
		if plan.format == "" {
			plan.format = m.Diagnostics.Format
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && m.Diagnostics.Max > 0 {
			plan.maxDiags = m.Diagnostics.Max
		}
		useCache = useCache && m.Build.Cache
	}
	plan.outDir = outDir
	plan.jobs = jobs
	if plan.format == "" {
		plan.format = "pretty"
	}

	if useCache {
		cache, err := buildpipeline.OpenDiskCache("")
		if err != nil {
			// Кэш не критичен: собираем без него
			if !quiet(cmd) {
				fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			}
		} else {
			plan.cache = cache
		}
	}
	plan.useTUI = shouldUseTUI(mode) && !plan.emitStdout && plan.format != "json"
	return plan, nil
}

func runBuildOnce(ctx context.Context, cmd *cobra.Command, plan buildPlan) error {
	var timer *observ.Timer
	if plan.timings {
		timer = observ.NewTimer()
	}
	req := &buildpipeline.Request{
		Files:          plan.files,
		BaseDir:        plan.baseDir,
		OutDir:         plan.outDir,
		Jobs:           plan.jobs,
		TargetTriple:   plan.target,
		MaxDiagnostics: plan.maxDiags,
		Compiler:       version.Version,
		Cache:          plan.cache,
		Timer:          timer,
	}

	var (
		result buildpipeline.Result
		err    error
	)
	if plan.useTUI {
		result, err = buildWithProgress(ctx, req)
	} else {
		result, err = buildpipeline.Build(ctx, req)
	}
	if err != nil {
		if errors.Is(err, buildpipeline.ErrNoInputs) {
			return fmt.Errorf("nothing to build: %w", err)
		}
		return err
	}

	color := useColor(cmd, os.Stderr)
	for _, f := range result.Files {
		if f.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", f.Display, f.Err)
			if !f.OK {
				continue
			}
		}
		if len(f.Diagnostics) > 0 {
			if err := printDiagnostics(os.Stderr, f.Diagnostics, f.FileSet, diagOutput{
				format: plan.format,
				notes:  true,
				color:  color,
			}); err != nil {
				return err
			}
		}
		if plan.emitStdout && f.OK {
			fmt.Fprint(os.Stdout, f.IR)
		}
	}

	if !quiet(cmd) && !plan.useTUI {
		printBuildSummary(result, plan.baseDir)
	}
	if plan.timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if !result.OK {
		return errDiagnostics
	}
	return nil
}

// buildWithProgress runs the build in the background and feeds its events
// to the progress view.
func buildWithProgress(ctx context.Context, req *buildpipeline.Request) (buildpipeline.Result, error) {
	events := make(chan buildpipeline.Event, 64)
	req.Progress = buildpipeline.ChannelSink{Ch: events}

	type outcome struct {
		result buildpipeline.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := buildpipeline.Build(ctx, req)
		close(events)
		done <- outcome{result: res, err: err}
	}()

	display := buildpipeline.DisplayNames(req.Files, req.BaseDir)
	if err := ui.RunProgress("minic build", display, events, os.Stdout); err != nil {
		// Интерфейс упал: дочитываем события, чтобы сборка не заблокировалась
		for range events {
		}
		fmt.Fprintf(os.Stderr, "progress UI failed: %v\n", err)
	}
	out := <-done
	return out.result, out.err
}

func printBuildSummary(result buildpipeline.Result, baseDir string) {
	built, cached := 0, 0
	for _, f := range result.Files {
		if !f.OK {
			continue
		}
		if f.Cached {
			cached++
		} else {
			built++
		}
		artifact := f.Artifact
		if rel, err := filepath.Rel(baseDir, artifact); err == nil {
			artifact = rel
		}
		fmt.Fprintf(os.Stderr, "  %s -> %s\n", f.Display, filepath.ToSlash(artifact))
	}
	failed := len(result.Failed())
	fmt.Fprintf(os.Stderr, "built %d, cached %d, failed %d in %s\n",
		built, cached, failed, result.Elapsed.Round(time.Millisecond))
}

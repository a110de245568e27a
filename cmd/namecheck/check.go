package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/term"

	"github.com/chris-regnier/namecheck/internal/analyzer"
	"github.com/chris-regnier/namecheck/internal/astcheck"
	"github.com/chris-regnier/namecheck/internal/cache"
	"github.com/chris-regnier/namecheck/internal/config"
	"github.com/chris-regnier/namecheck/internal/evaluator"
	"github.com/chris-regnier/namecheck/internal/input"
	"github.com/chris-regnier/namecheck/internal/metrics"
	"github.com/chris-regnier/namecheck/internal/output"
	"github.com/chris-regnier/namecheck/internal/sarif"
	"github.com/chris-regnier/namecheck/internal/store"
	"github.com/chris-regnier/namecheck/internal/telemetry"
)

type checkFlags struct {
	config        string
	minNameLength int
	selectChecks  []string
	exclude       []string
	format        string
	output        string
	policyDir     string
	jobs          int
	noCache       bool
	quiet         bool
	verbose       bool
	debug         bool
	logFormat     string
	stats         bool
	metricsPath   string
	exitZero      bool
}

var flagsCheck checkFlags

func init() {
	checkCmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Python files for naming violations",
		Long: `Check Python files and directories for names that are too short (WPS111)
or that put an underscore before a number (WPS114).

Paths default to the current directory. Exit status is 0 when the run
passes the gate policy, 1 when it fails and 2 on errors. The default policy
fails on any finding.`,
		RunE: runCheck,
	}

	f := checkCmd.Flags()
	f.StringVar(&flagsCheck.config, "config", "", "Project config file (default ./"+config.ProjectConfigName+")")
	f.IntVar(&flagsCheck.minNameLength, "min-name-length", 0, "Minimum accepted name length, overrides config")
	f.StringSliceVar(&flagsCheck.selectChecks, "select", nil, "Checks to run, by name or code (default: enabled in config)")
	f.StringSliceVar(&flagsCheck.exclude, "exclude", nil, "Additional glob patterns to skip")
	f.StringVar(&flagsCheck.format, "format", "", "Output format: "+strings.Join(output.Formats, ", ")+" (default: pretty on a terminal, text otherwise)")
	f.StringVar(&flagsCheck.output, "output", "", "Directory to store the SARIF log and run summary; runs and review read "+defaultResultsDir+" by default")
	f.StringVar(&flagsCheck.policyDir, "policy", "", "Directory of Rego gate policies deciding pass or fail (default: fail on any finding)")
	f.IntVarP(&flagsCheck.jobs, "jobs", "j", 0, "Files analyzed in parallel (default: number of CPUs)")
	f.BoolVar(&flagsCheck.noCache, "no-cache", false, "Disable the result cache")
	f.BoolVarP(&flagsCheck.quiet, "quiet", "q", false, "Suppress log output")
	f.BoolVarP(&flagsCheck.verbose, "verbose", "v", false, "Log progress information")
	f.BoolVar(&flagsCheck.debug, "debug", false, "Log debug information")
	f.StringVar(&flagsCheck.logFormat, "log-format", "text", "Log format: text or json")
	f.BoolVar(&flagsCheck.stats, "stats", false, "Print run statistics to stderr")
	f.StringVar(&flagsCheck.metricsPath, "metrics", "", "Write per-file metrics to this path, as CSV when it ends in .csv and JSON otherwise")
	f.BoolVar(&flagsCheck.exitZero, "exit-zero", false, "Exit with status 0 even when findings are reported")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flags := flagsCheck

	switch flags.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("--log-format must be 'text' or 'json', got: %s", flags.logFormat)
	}
	slog.SetDefault(output.SetupLogger(output.LogOptions{
		Quiet:   flags.quiet,
		Verbose: flags.verbose,
		Debug:   flags.debug,
		JSON:    flags.logFormat == "json",
	}, cmd.ErrOrStderr()))

	cfg, err := loadCheckConfig(cmd, flags)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		slog.Warn("telemetry disabled", "error", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	reg := astcheck.DefaultRegistry()
	checks := cfg.EnabledChecks(reg)
	if len(flags.selectChecks) > 0 {
		selected, unknown := reg.Select(flags.selectChecks)
		if len(unknown) > 0 {
			return fmt.Errorf("--select: unknown check(s) %s (known: %s)",
				strings.Join(unknown, ", "), strings.Join(reg.Names(), ", "))
		}
		checks = selected
	}
	levels := cfg.Levels(reg)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	handler, err := input.NewHandler(cfg.Exclude...)
	if err != nil {
		return err
	}
	artifacts, err := handler.Read(paths)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	slog.Info("checking files", "files", len(artifacts), "checks", len(checks), "min_name_length", settings.MinNameLength())

	recorder, err := metrics.NewRecorder(metrics.NewCollector(), otel.Meter("github.com/chris-regnier/namecheck"))
	if err != nil {
		return fmt.Errorf("creating metrics recorder: %w", err)
	}

	opts := []analyzer.Option{
		analyzer.WithRecorder(recorder),
		analyzer.WithLevels(levels),
		analyzer.WithJobs(flags.jobs),
		analyzer.WithToolVersion(version),
	}
	var memCache *cache.MemoryCache
	if cfg.Cache.IsEnabled() && !flags.noCache {
		memCache = cache.NewMemoryCache()
		opts = append(opts, analyzer.WithCache(
			cache.NewMultiTierCache(memCache, cache.NewLocalCache(cfg.Cache.Dir))))
	}

	findings, err := analyzer.NewAnalyzer(checks, settings, opts...).Analyze(ctx, artifacts)
	if err != nil {
		return err
	}

	wd, _ := os.Getwd()
	sarifLog := sarif.NewAssembler().
		AddResults(analyzer.ToSARIF(findings)).
		AddRules(analyzer.Rules(checks, levels)).
		WithToolVersion(version).
		WithInvocation(sarif.Invocation{
			CommandLine:         strings.Join(os.Args, " "),
			WorkingDirectory:    sarif.ArtifactLocation{URI: wd},
			ExecutionSuccessful: true,
		}).
		WithProperty("namecheck/naming", settings.Options()).
		Build()
	summary := store.NewSummary(sarifLog, len(artifacts), settings.MinNameLength())

	gate, err := evaluator.NewEvaluator(ctx, flags.policyDir)
	if err != nil {
		return fmt.Errorf("creating evaluator: %w", err)
	}
	verdict, err := gate.Evaluate(ctx, sarifLog)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}
	summary.Decision = verdict.Decision
	slog.Info("gate decision", "decision", verdict.Decision, "reason", verdict.Reason)

	if flags.output != "" {
		fs := store.NewFileStore(flags.output)
		id, err := fs.WriteSARIF(ctx, sarifLog)
		if err != nil {
			return fmt.Errorf("storing SARIF: %w", err)
		}
		if err := fs.WriteSummary(ctx, id, summary); err != nil {
			return fmt.Errorf("storing summary: %w", err)
		}
		slog.Info("stored run", "id", id, "dir", flags.output)
	}

	sources := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		sources[a.Path] = a.Content
	}
	if err := writeOutput(cmd.OutOrStdout(), flags.format, &output.AnalysisOutput{
		Findings: findings,
		SARIFLog: sarifLog,
		Summary:  summary,
		Sources:  sources,
	}); err != nil {
		return err
	}

	exporter := metrics.NewExporter(recorder.Collector())
	if flags.stats {
		if err := exporter.WriteReport(cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		if memCache != nil {
			cs := memCache.Stats()
			fmt.Fprintf(cmd.ErrOrStderr(), "Memory cache: %d entries, %d hits, %d misses, %d evictions\n",
				cs.Size, cs.Hits, cs.Misses, cs.Evictions)
		}
	}
	if flags.metricsPath != "" {
		if err := exporter.Export(flags.metricsPath); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	if !verdict.Passed() && !flags.exitZero {
		return &exitError{code: 1}
	}
	return nil
}

// loadCheckConfig layers system defaults, the machine and project config
// files, the environment and finally command-line flags.
func loadCheckConfig(cmd *cobra.Command, flags checkFlags) (*config.Config, error) {
	projectPath := flags.config
	if projectPath == "" {
		projectPath = config.ProjectConfigName
	} else if _, err := os.Stat(projectPath); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := config.LoadTiered(config.MachineConfigPath(), projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("min-name-length") {
		n := flags.minNameLength
		cfg.Naming.MinNameLength = &n
	}
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	cfg.Telemetry.ServiceVersion = version

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func writeOutput(w io.Writer, format string, result *output.AnalysisOutput) error {
	tty := isTerminal(w)
	formatter, err := output.NewFormatter(output.ResolveFormat(format, tty))
	if err != nil {
		return err
	}
	if pf, ok := formatter.(*output.PrettyFormatter); ok {
		pf.Color = tty
	}
	data, err := formatter.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

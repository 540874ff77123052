package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/configloader"
	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/markdown"
	"github.com/yaklabco/csvdoc/pkg/reporter"
	"github.com/yaklabco/csvdoc/pkg/runner"
)

// ErrIssuesFound is returned when a check finds issues that fail the run.
var ErrIssuesFound = errors.New("issues found")

type checkFlags struct {
	format       string
	flavor       string
	ruleFormat   string
	summaryOrder string
	ignore       []string
	extensions   []string
	enable       []string
	disable      []string
	jobs         int
	embedded     bool
	strict       bool
	verify       bool
	noContext    bool
	compact      bool
	perFile      bool
	stats        bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check CSV files for structural problems",
		Long:  checkLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check CSV files for unclosed quotes, ragged rows and other problems.

By default, checks every .csv file in the current directory and its
subdirectories. With --embedded, CSV fenced code blocks in Markdown files
are checked too. Pass - to check standard input.

Examples:
  csvdoc check                      # Check the current directory
  csvdoc check data/                # Check a directory
  csvdoc check --enable CSV002      # Also report ragged rows
  csvdoc check --embedded docs/     # Check CSV blocks in Markdown
  csvdoc check --format sarif       # SARIF for code scanning
  cat data.csv | csvdoc check -     # Check standard input`

// envHelp lists the environment variables that override config files.
func envHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment:\n")
	fmt.Fprintf(&b, "  %-24s %s\n", configloader.ConfigEnvVar, "config file to use when --config is not given")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&b, "  %-24s %s\n", v.Name, v.Help)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// cliConfig maps the flags that were set on the command line to a config
// layer. Unset flags stay zero so lower layers keep their values.
func cliConfig(cmd *cobra.Command, flags *checkFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("summary-order") {
		cfg.SummaryOrder = config.SummaryOrder(flags.summaryOrder)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("extensions") {
		cfg.Extensions = flags.extensions
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}
	cfg.Jobs = flags.jobs
	cfg.Embedded = flags.embedded
	cfg.Strict = flags.strict

	return cfg
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldEmbedded, cfg.Embedded,
		logging.FieldJobs, cfg.Jobs,
	)

	registry := lint.DefaultRegistry
	engine := lint.NewEngine(markdown.NewExtractor(string(cfg.Flavor)), registry)
	pipeline := lint.NewPipeline(engine)

	var result *runner.Result
	if slices.Equal(args, []string{stdinArg}) {
		result, err = checkStdin(cmd, pipeline, cfg)
	} else {
		result, err = checkPaths(cmd, pipeline, cfg, args, workDir, flags.verify)
	}
	if err != nil {
		return err
	}
	logRuleErrors(result)

	runID := uuid.NewString()
	logger.Debug("reporting", logging.FieldRunID, runID, logging.FieldFormat, cfg.Format)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          format,
		Color:           colorMode,
		ShowContext:     !flags.noContext,
		ShowSummary:     true,
		DetailedSummary: flags.stats,
		GroupByFile:     true,
		Compact:         flags.compact,
		PerFile:         flags.perFile,
		RuleFormat:      cfg.RuleFormat,
		SummaryOrder:    cfg.SummaryOrder,
		RunID:           runID,
		ToolVersion:     toolVersion(cmd),
		Registry:        registry,
		WorkingDir:      workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return &IssuesError{Code: code}
	}
	return nil
}

func checkPaths(
	cmd *cobra.Command,
	pipeline *lint.Pipeline,
	cfg *config.Config,
	paths []string,
	workDir string,
	verify bool,
) (*runner.Result, error) {
	opts := runner.Options{
		Paths:           paths,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		Jobs:            cfg.Jobs,
		VerifyUnchanged: verify,
		Config:          cfg,
	}

	logging.Default().Debug("starting check",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(pipeline).Run(commandContext(cmd), opts)
	if err != nil {
		return nil, errors.Join(errors.New("check run failed"), err)
	}

	logging.Default().Debug("check finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)
	return result, nil
}

// checkStdin checks standard input as a single CSV document.
func checkStdin(cmd *cobra.Command, pipeline *lint.Pipeline, cfg *config.Config) (*runner.Result, error) {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	outcome := runner.FileOutcome{Path: stdinPath}
	outcome.Result, outcome.Error = pipeline.ProcessContent(commandContext(cmd), stdinPath, content, cfg)

	result := &runner.Result{}
	result.Add(outcome)
	return result, nil
}

// logRuleErrors reports rules that failed to run. Their files are still
// reported with the diagnostics of the other rules.
func logRuleErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for ruleID, err := range file.Result.RuleErrors {
			logging.Default().Warn("rule failed",
				logging.FieldRule, ruleID,
				logging.FieldPath, file.Path,
				logging.FieldError, err,
			)
		}
	}
}

// toolVersion returns the version set on the root command.
func toolVersion(cmd *cobra.Command) string {
	return cmd.Root().Annotations[annotationVersion]
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to check (default .csv)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.embedded, "embedded", false, "also check CSV fenced code blocks in Markdown files")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor for embedded CSV: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "report files that change while being checked")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a detailed summary with region and row counts (text format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/csvdoc/internal/logging"
	"github.com/yaklabco/csvdoc/pkg/config"
	"github.com/yaklabco/csvdoc/pkg/fsutil"
	"github.com/yaklabco/csvdoc/pkg/lint"
	"github.com/yaklabco/csvdoc/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigFile is written when --output is not given.
const defaultConfigFile = ".csvdoc.yml"

// ErrConfigExists is returned when init would overwrite a file without --force.
var ErrConfigExists = errors.New("configuration file already exists")

type initFlags struct {
	force  bool
	full   bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a csvdoc configuration file",
		Long: `Create a commented .csvdoc.yml in the current directory.

The file enables and configures rules, sets ignore patterns and
extensions, and turns on checking of CSV blocks in Markdown. Start from a
rule pack to get a preset selection of rules.`,
		Example: `  csvdoc init                     Minimal .csvdoc.yml
  csvdoc init --full              Document every rule
  csvdoc init --pack strict       Enable every rule as an error
  csvdoc init -o ci/csvdoc.yml    Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule in the template")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	opts := config.TemplateOptions{Full: flags.full}
	var pack *rules.Pack
	if flags.pack != "" {
		pack = rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("unknown pack %q: available packs are %s",
				flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Full = true
	}
	if opts.Full {
		opts.Rules = templateRules(lint.DefaultRegistry, pack)
	}

	content := config.GenerateTemplate(opts)
	written, err := fsutil.WriteAtomicIfChanged(commandContext(cmd), absPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	if written {
		logger.Info("created configuration file", logging.FieldOutput, flags.output)
	} else {
		logger.Info("configuration file already up to date", logging.FieldOutput, flags.output)
	}
	if pack != nil {
		logger.Info("rules preset from pack", logging.FieldPack, pack.Name)
	}
	logger.Info("run 'csvdoc rules' to see all available rules")

	return nil
}

// templateRules describes the registered rules, applying the pack's
// settings on top of each rule's defaults. Rules outside a pack are
// disabled.
func templateRules(registry *lint.Registry, pack *rules.Pack) []config.RuleInfo {
	registered := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(registered))

	for _, rule := range registered {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        slices.Clone(rule.Tags()),
		}

		if pack != nil {
			rc, inPack := pack.Rules[rule.ID()]
			info.Enabled = inPack
			if inPack && rc.Enabled != nil {
				info.Enabled = *rc.Enabled
			}
			if inPack && rc.Severity != nil {
				info.Severity = config.Severity(*rc.Severity)
			}
		}

		infos = append(infos, info)
	}
	return infos
}

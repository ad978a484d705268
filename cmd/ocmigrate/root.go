package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/ocmigrate/internal/config"
	"github.com/conn-castle/ocmigrate/internal/messages"
	"github.com/conn-castle/ocmigrate/internal/migrate"
	"github.com/conn-castle/ocmigrate/internal/plan"
	"github.com/conn-castle/ocmigrate/internal/terminal"
)

type rootFlags struct {
	root         string
	agents       bool
	commands     bool
	permissions  bool
	mcp          bool
	all          bool
	includeLocal bool
	target       string
	dryRun       bool
	conflict     string
	noColor      bool
}

// isInteractiveFunc gates the prompt conflict policy; overridable in tests.
var isInteractiveFunc = terminal.IsInteractive

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.root, "root", ".", messages.RootFlagRoot)
	cmd.Flags().BoolVar(&flags.agents, "agents", false, messages.RootFlagAgents)
	cmd.Flags().BoolVar(&flags.commands, "commands", false, messages.RootFlagCommands)
	cmd.Flags().BoolVar(&flags.permissions, "permissions", false, messages.RootFlagPermissions)
	cmd.Flags().BoolVar(&flags.mcp, "mcp", false, messages.RootFlagMCP)
	cmd.Flags().BoolVar(&flags.all, "all", false, messages.RootFlagAll)
	cmd.Flags().BoolVar(&flags.includeLocal, "include-local", false, messages.RootFlagIncludeLocal)
	cmd.Flags().StringVar(&flags.target, "target", string(migrate.TargetProject), messages.RootFlagTarget)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, messages.RootFlagDryRun)
	cmd.Flags().StringVar(&flags.conflict, "conflict", string(plan.ConflictSkip), messages.RootFlagConflict)
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, messages.RootFlagNoColor)

	return cmd
}

func runRoot(cmd *cobra.Command, flags *rootFlags) error {
	root, err := filepath.Abs(flags.root)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, flags, cfg)

	if flags.noColor {
		color.NoColor = true
	}

	conflict, err := plan.ParseConflictPolicy(flags.conflict)
	if err != nil {
		return err
	}
	target, err := migrate.ParseTarget(flags.target)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	printHeader(stdout, root, flags.dryRun, conflict, target)
	if _, statErr := os.Stat(filepath.Join(root, ".claude")); statErr != nil {
		_, _ = fmt.Fprintln(stderr, messages.RootNoClaudeDir)
	}

	var prompter plan.Prompter
	if conflict == plan.ConflictPrompt && !flags.dryRun {
		if !isInteractiveFunc() {
			return errors.New(messages.PromptRequiresTerminal)
		}
		prompter = huhPrompter{}
	}

	agents, commands, permissions, mcp := resolveScopes(flags)
	result, warns, err := migrate.Run(migrate.Options{
		Root:         root,
		Agents:       agents,
		Commands:     commands,
		Permissions:  permissions,
		MCP:          mcp,
		IncludeLocal: flags.includeLocal,
		Target:       target,
		DryRun:       flags.dryRun,
		Conflict:     conflict,
		Prompter:     prompter,
		Out:          stdout,
	})
	if err != nil {
		return err
	}

	warnColor := color.New(color.FgYellow)
	for _, w := range warns {
		_, _ = fmt.Fprintf(stderr, "%s%s\n", warnColor.Sprint(messages.WarningLinePrefix), w)
	}

	printSummary(stdout, result)
	if !result.OK() {
		return &SilentExitError{Code: 1}
	}
	return nil
}

// applyConfigDefaults fills in flag values from .ocmigrate.toml, but only for
// flags the operator did not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	if !cmd.Flags().Changed("conflict") && cfg.Conflict != "" {
		flags.conflict = cfg.Conflict
	}
	if !cmd.Flags().Changed("target") && cfg.Target != "" {
		flags.target = cfg.Target
	}
	if !cmd.Flags().Changed("include-local") && cfg.IncludeLocal != nil {
		flags.includeLocal = *cfg.IncludeLocal
	}
}

// resolveScopes expands --all (or the absence of any scope flag) to every scope.
func resolveScopes(flags *rootFlags) (agents bool, commands bool, permissions bool, mcp bool) {
	if flags.all || (!flags.agents && !flags.commands && !flags.permissions && !flags.mcp) {
		return true, true, true, true
	}
	return flags.agents, flags.commands, flags.permissions, flags.mcp
}

func printHeader(out io.Writer, root string, dryRun bool, conflict plan.ConflictPolicy, target migrate.Target) {
	title := color.New(color.FgCyan, color.Bold)
	_, _ = fmt.Fprintln(out, title.Sprint(messages.HeaderTitle))
	_, _ = fmt.Fprintf(out, messages.HeaderContextFmt, root, dryRun, conflict, target)
}

func printSummary(out io.Writer, result plan.Result) {
	if result.BackupDir != "" {
		_, _ = fmt.Fprintf(out, messages.PlanBackupNoteFmt, result.BackupDir)
	}
	_, _ = fmt.Fprintln(out, messages.PlanSummaryHeader)
	_, _ = fmt.Fprintf(out, messages.PlanSummaryCreatedFmt, result.Created)
	_, _ = fmt.Fprintf(out, messages.PlanSummaryUpdatedFmt, result.Updated)
	_, _ = fmt.Fprintf(out, messages.PlanSummarySkippedFmt, result.Skipped)
	_, _ = fmt.Fprintf(out, messages.PlanSummaryErroredFmt, result.Errored)
}

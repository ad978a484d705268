// Package migrate orchestrates a migration run: it discovers Claude Code
// sources, applies the schema transforms, assembles the action plan, and
// executes it.
package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/ocmigrate/internal/discover"
	"github.com/conn-castle/ocmigrate/internal/messages"
	"github.com/conn-castle/ocmigrate/internal/plan"
	"github.com/conn-castle/ocmigrate/internal/transform"
	"github.com/conn-castle/ocmigrate/internal/warnings"
)

// Target selects which OpenCode config file receives permission, tools, and
// MCP entries.
type Target string

const (
	// TargetProject writes <root>/opencode.json.
	TargetProject Target = "project"
	// TargetGlobal writes ~/.config/opencode/opencode.json.
	TargetGlobal Target = "global"
)

// ParseTarget validates a target name from the CLI or config file.
func ParseTarget(value string) (Target, error) {
	switch Target(value) {
	case TargetProject, TargetGlobal:
		return Target(value), nil
	default:
		return "", fmt.Errorf(messages.MigrateInvalidTargetFmt, value)
	}
}

// homeDirFunc resolves the user's home directory; overridable in tests.
var homeDirFunc = homedir.Dir

// Options control one migration run.
type Options struct {
	// Root is the project root holding the .claude sources.
	Root string

	// Scope selection. All false is invalid; the CLI defaults to everything.
	Agents      bool
	Commands    bool
	Permissions bool
	MCP         bool

	// IncludeLocal union-merges .claude/settings.local.json permissions.
	IncludeLocal bool
	// Target selects the destination config file for permissions and MCP.
	Target Target
	// DryRun previews every change without mutating the filesystem.
	DryRun bool
	// Conflict is the policy for existing destination files.
	Conflict plan.ConflictPolicy

	// System, Prompter, Out, and Now are passed through to the plan executor.
	System   plan.System
	Prompter plan.Prompter
	Out      io.Writer
	Now      func() time.Time
}

// Run builds and executes the migration plan for opts. Per-file transform
// failures and source load failures become warnings; only structural problems
// (unresolvable paths, unknown target) are returned as errors.
func Run(opts Options) (plan.Result, []warnings.Warning, error) {
	if strings.TrimSpace(opts.Root) == "" {
		return plan.Result{}, nil, fmt.Errorf(messages.MigrateRootRequired)
	}

	warn := &warnings.Collector{}
	p := plan.New(plan.Options{
		Root:     opts.Root,
		DryRun:   opts.DryRun,
		Conflict: opts.Conflict,
		System:   opts.System,
		Prompter: opts.Prompter,
		Out:      opts.Out,
		Now:      opts.Now,
	})

	if opts.Agents {
		if err := planDocuments(p, documentPlanParams{
			sources:     func() ([]string, error) { return discover.AgentFiles(opts.Root) },
			destDir:     filepath.Join(opts.Root, ".opencode", "agent"),
			ensureDesc:  messages.MigrateEnsureAgentDir,
			perFileDesc: messages.MigrateAgentFileFmt,
			readWarnFmt: messages.MigrateAgentReadWarnFmt,
			transform: func(doc string, filename string) string {
				return transform.AgentDocument(doc, filename, warn)
			},
		}, warn); err != nil {
			return plan.Result{}, nil, err
		}
	}

	if opts.Commands {
		if err := planDocuments(p, documentPlanParams{
			sources:     func() ([]string, error) { return discover.CommandFiles(opts.Root) },
			destDir:     filepath.Join(opts.Root, ".opencode", "command"),
			ensureDesc:  messages.MigrateEnsureCommandDir,
			perFileDesc: messages.MigrateCommandFileFmt,
			readWarnFmt: messages.MigrateCommandReadWarnFmt,
			transform:   transform.CommandDocument,
		}, warn); err != nil {
			return plan.Result{}, nil, err
		}
	}

	addPermission := map[string]any{}
	addTools := map[string]bool{}
	var addServers map[string]transform.ServerConfig

	if opts.Permissions {
		settings, err := discover.LoadSettings(opts.Root, opts.IncludeLocal)
		if err != nil {
			warn.Addf(messages.MigratePermissionsWarnFmt, err)
		} else {
			result := transform.Permissions(settings.Allow, settings.Deny, warn)
			addPermission = result.Permission
			for token, enabled := range result.Tools {
				addTools[token] = enabled
			}
		}
	}

	if opts.MCP {
		src, err := discover.LoadMCPServers(opts.Root)
		if err != nil {
			warn.Addf(messages.MigrateMCPWarnFmt, err)
		} else {
			addServers = transform.Servers(src)
			for name := range addServers {
				token := strings.ToLower(name) + "_*"
				if _, present := addTools[token]; !present {
					addTools[token] = true
				}
			}
		}
	}

	if opts.Permissions || opts.MCP {
		path, description, err := destinationConfigPath(opts.Root, opts.Target)
		if err != nil {
			return plan.Result{}, nil, err
		}
		p.AddMergeJSON(path, ConfigMerge(addPermission, addTools, addServers), description)
	}

	return p.Execute(), warn.All(), nil
}

type documentPlanParams struct {
	sources     func() ([]string, error)
	destDir     string
	ensureDesc  string
	perFileDesc string
	readWarnFmt string
	transform   func(doc string, filename string) string
}

// planDocuments queues the destination directory and one write per source
// document. Unreadable sources warn and are skipped.
func planDocuments(p *plan.Plan, params documentPlanParams, warn *warnings.Collector) error {
	p.AddEnsureDir(params.destDir, params.ensureDesc)
	files, err := params.sources()
	if err != nil {
		return err
	}
	for _, src := range files {
		data, err := os.ReadFile(src)
		if err != nil {
			warn.Addf(params.readWarnFmt, src, err)
			continue
		}
		name := filepath.Base(src)
		doc := params.transform(string(data), name)
		p.AddWriteText(filepath.Join(params.destDir, name), doc, fmt.Sprintf(params.perFileDesc, name))
	}
	return nil
}

func destinationConfigPath(root string, target Target) (string, string, error) {
	switch target {
	case TargetGlobal:
		home, err := homeDirFunc()
		if err != nil {
			return "", "", fmt.Errorf(messages.MigrateResolveHomeFailedFmt, err)
		}
		return filepath.Join(home, ".config", "opencode", "opencode.json"), messages.MigrateGlobalConfig, nil
	case TargetProject, "":
		return filepath.Join(root, "opencode.json"), messages.MigrateProjectConfig, nil
	default:
		return "", "", fmt.Errorf(messages.MigrateInvalidTargetFmt, string(target))
	}
}

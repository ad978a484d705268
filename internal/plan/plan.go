// Package plan implements the migration plan engine: a declarative list of
// filesystem actions executed once per run with dry-run diffing, timestamped
// backups of overwritten files, and pluggable conflict resolution.
package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/ocmigrate/internal/messages"
)

// backupDirName is the backup root under the project root. Each run gets one
// timestamped subdirectory shared by every backed-up file.
const backupDirName = ".opencode-migrate-backup"

// Options configure a Plan.
type Options struct {
	// Root is the project root; backups and relative backup paths are
	// computed against it.
	Root string
	// DryRun reports every change as a diff without mutating the filesystem.
	DryRun bool
	// Conflict is the policy for existing destination files that differ.
	Conflict ConflictPolicy
	// System provides filesystem operations; nil means RealSystem.
	System System
	// Prompter resolves ConflictPrompt decisions; required only for that policy.
	Prompter Prompter
	// Out receives per-action progress output; nil discards it.
	Out io.Writer
	// Now supplies the backup timestamp; nil means time.Now.
	Now func() time.Time
}

// Plan is an ordered list of actions consumed exactly once by Execute.
type Plan struct {
	root     string
	dryRun   bool
	conflict ConflictPolicy
	sys      System
	prompter Prompter
	out      io.Writer
	now      func() time.Time

	actions   []Action
	backupDir string
}

// New constructs an empty plan.
func New(opts Options) *Plan {
	p := &Plan{
		root:     opts.Root,
		dryRun:   opts.DryRun,
		conflict: opts.Conflict,
		sys:      opts.System,
		prompter: opts.Prompter,
		out:      opts.Out,
		now:      opts.Now,
	}
	if p.sys == nil {
		p.sys = RealSystem{}
	}
	if p.out == nil {
		p.out = io.Discard
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.conflict == "" {
		p.conflict = ConflictSkip
	}
	return p
}

// AddEnsureDir queues an idempotent directory creation.
func (p *Plan) AddEnsureDir(path string, description string) {
	p.actions = append(p.actions, Action{Kind: KindEnsureDir, Path: path, Description: description})
}

// AddWriteText queues a literal text file write.
func (p *Plan) AddWriteText(path string, content string, description string) {
	p.actions = append(p.actions, Action{Kind: KindWriteText, Path: path, Description: description, Content: content})
}

// AddMergeJSON queues a JSON object merge.
func (p *Plan) AddMergeJSON(path string, merge MergeFunc, description string) {
	p.actions = append(p.actions, Action{Kind: KindMergeJSON, Path: path, Description: description, Merge: merge})
}

// Actions returns the queued actions in insertion order.
func (p *Plan) Actions() []Action {
	return p.actions
}

// Result tallies per-action outcomes for one run.
type Result struct {
	Created int
	Updated int
	Skipped int
	Errored int

	// BackupDir is the run's backup directory, empty when nothing was backed up.
	BackupDir string
}

// OK reports whether every action completed without error.
func (r Result) OK() bool {
	return r.Errored == 0
}

type outcome int

const (
	outcomeNone outcome = iota
	outcomeCreated
	outcomeUpdated
	outcomeSkipped
)

var (
	labelApplied  = color.New(color.FgGreen)
	labelSkip     = color.New(color.FgYellow)
	labelUpToDate = color.New(color.FgBlue)
	labelPlanned  = color.New(color.FgCyan)
	labelError    = color.New(color.FgRed)
)

// Execute runs the full action list sequentially. A failing action is tallied
// as errored and never aborts the remaining actions.
func (p *Plan) Execute() Result {
	var result Result
	for _, act := range p.actions {
		out, err := p.executeAction(act)
		if err != nil {
			result.Errored++
			fmt.Fprintf(p.out, messages.PlanActionErrorFmt, labelError.Sprint(messages.PlanLabelError), act.Path, err)
			continue
		}
		switch out {
		case outcomeCreated:
			result.Created++
		case outcomeUpdated:
			result.Updated++
		case outcomeSkipped:
			result.Skipped++
		case outcomeNone:
		}
	}
	result.BackupDir = p.backupDir
	return result
}

func (p *Plan) executeAction(act Action) (outcome, error) {
	switch act.Kind {
	case KindEnsureDir:
		return p.ensureDir(act)
	case KindWriteText:
		return p.writeText(act)
	case KindMergeJSON:
		return p.mergeJSON(act)
	default:
		return outcomeNone, fmt.Errorf("unknown action kind %d", act.Kind)
	}
}

func (p *Plan) ensureDir(act Action) (outcome, error) {
	if p.dryRun {
		suffix := ""
		if _, err := p.sys.Stat(act.Path); err == nil {
			suffix = messages.PlanDirExistsSuffix
		}
		fmt.Fprintf(p.out, "%s %s%s\n", labelPlanned.Sprint(messages.PlanLabelMkdir), act.Path, suffix)
		return outcomeNone, nil
	}
	if err := p.sys.MkdirAll(act.Path, 0o755); err != nil {
		return outcomeNone, fmt.Errorf(messages.PlanMkdirFailedFmt, act.Path, err)
	}
	fmt.Fprintf(p.out, "%s %s\n", labelApplied.Sprint(messages.PlanLabelMkdir), act.Path)
	return outcomeNone, nil
}

func (p *Plan) writeText(act Action) (outcome, error) {
	current, exists, err := p.readIfExists(act.Path)
	if err != nil {
		return outcomeNone, err
	}

	if exists && current == act.Content {
		fmt.Fprintf(p.out, "%s %s\n", labelUpToDate.Sprint(messages.PlanLabelUpToDate), act.Path)
		return outcomeSkipped, nil
	}

	if !exists {
		if p.dryRun {
			fmt.Fprintf(p.out, "%s %s\n", labelPlanned.Sprint(messages.PlanLabelCreate), act.Path)
			p.printDiff(messages.PlanNewFileHeaderFmt, act.Path, "", act.Content)
			return outcomeCreated, nil
		}
		if err := p.writeFile(act.Path, []byte(act.Content)); err != nil {
			return outcomeNone, err
		}
		fmt.Fprintf(p.out, "%s %s\n", labelApplied.Sprint(messages.PlanLabelCreated), act.Path)
		return outcomeCreated, nil
	}

	// Existing file with differing content. Dry runs only report.
	if p.dryRun {
		p.printDiff(messages.PlanDiffHeaderFmt, act.Path, current, act.Content)
		return outcomeSkipped, nil
	}
	proceed, err := p.resolveConflict(act.Path)
	if err != nil {
		return outcomeNone, err
	}
	if !proceed {
		fmt.Fprintf(p.out, messages.PlanSkipConflictFmt, labelSkip.Sprint(messages.PlanLabelSkipped), act.Path)
		return outcomeSkipped, nil
	}
	if err := p.backupExisting(act.Path); err != nil {
		return outcomeNone, err
	}
	if err := p.writeFile(act.Path, []byte(act.Content)); err != nil {
		return outcomeNone, err
	}
	fmt.Fprintf(p.out, "%s %s\n", labelApplied.Sprint(messages.PlanLabelUpdated), act.Path)
	return outcomeUpdated, nil
}

func (p *Plan) mergeJSON(act Action) (outcome, error) {
	current, exists, err := p.loadJSONObject(act.Path)
	if err != nil {
		return outcomeNone, err
	}
	currentJSON, err := canonicalJSON(current)
	if err != nil {
		return outcomeNone, err
	}
	nextJSON, err := canonicalJSON(act.Merge(current))
	if err != nil {
		return outcomeNone, err
	}

	if bytes.Equal(currentJSON, nextJSON) {
		fmt.Fprintf(p.out, "%s %s\n", labelUpToDate.Sprint(messages.PlanLabelUpToDate), act.Path)
		return outcomeSkipped, nil
	}

	if p.dryRun {
		p.printDiff(messages.PlanJSONDiffHeaderFmt, act.Path, string(currentJSON), string(nextJSON))
		return outcomeSkipped, nil
	}

	if exists {
		proceed, err := p.resolveConflict(act.Path)
		if err != nil {
			return outcomeNone, err
		}
		if !proceed {
			fmt.Fprintf(p.out, messages.PlanSkipConflictFmt, labelSkip.Sprint(messages.PlanLabelSkipped), act.Path)
			return outcomeSkipped, nil
		}
		if err := p.backupExisting(act.Path); err != nil {
			return outcomeNone, err
		}
	}
	if err := p.writeFile(act.Path, nextJSON); err != nil {
		return outcomeNone, err
	}
	if exists {
		fmt.Fprintf(p.out, "%s %s\n", labelApplied.Sprint(messages.PlanLabelUpdated), act.Path)
		return outcomeUpdated, nil
	}
	fmt.Fprintf(p.out, "%s %s\n", labelApplied.Sprint(messages.PlanLabelCreated), act.Path)
	return outcomeCreated, nil
}

// resolveConflict decides whether an existing, differing file may be
// overwritten on a live run.
func (p *Plan) resolveConflict(path string) (bool, error) {
	switch p.conflict {
	case ConflictOverwrite:
		return true, nil
	case ConflictPrompt:
		if p.prompter == nil {
			return false, errors.New(messages.PlanPromptRequired)
		}
		return p.prompter.Overwrite(path)
	default:
		return false, nil
	}
}

// BackupDir returns the run's single timestamped backup directory, computing
// it on first use so all backups for one invocation share one timestamp.
func (p *Plan) BackupDir() string {
	if p.backupDir == "" {
		p.backupDir = filepath.Join(p.root, backupDirName, p.now().Format("20060102-150405"))
	}
	return p.backupDir
}

// backupExisting copies path into the run's backup directory before it is
// overwritten, mirroring the path relative to the project root. Paths outside
// the root land under an external/ escape hatch.
func (p *Plan) backupExisting(path string) error {
	data, err := p.sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(messages.PlanBackupFailedFmt, path, err)
	}

	dest := filepath.Join(p.BackupDir(), "external", sanitizePathComponent(path))
	if rel, relErr := filepath.Rel(p.root, path); relErr == nil && !strings.HasPrefix(rel, "..") {
		dest = filepath.Join(p.BackupDir(), rel)
	}

	perm := os.FileMode(0o644)
	if info, statErr := p.sys.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := p.sys.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf(messages.PlanBackupFailedFmt, path, err)
	}
	if err := p.sys.WriteFileAtomic(dest, data, perm); err != nil {
		return fmt.Errorf(messages.PlanBackupFailedFmt, path, err)
	}
	return nil
}

func sanitizePathComponent(path string) string {
	return strings.NewReplacer(":", "", "/", "_", "\\", "_").Replace(path)
}

func (p *Plan) readIfExists(path string) (string, bool, error) {
	data, err := p.sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(messages.PlanReadFailedFmt, path, err)
	}
	return string(data), true, nil
}

// loadJSONObject reads path as a JSON object. A missing file yields an empty
// object; malformed JSON is fatal for the action.
func (p *Plan) loadJSONObject(path string) (map[string]any, bool, error) {
	data, err := p.sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, false, nil
		}
		return nil, false, fmt.Errorf(messages.PlanReadFailedFmt, path, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false, fmt.Errorf(messages.PlanInvalidJSONFmt, path, err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, true, nil
}

func (p *Plan) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := p.sys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.PlanMkdirFailedFmt, dir, err)
	}
	if err := p.sys.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.PlanWriteFailedFmt, path, err)
	}
	return nil
}

func (p *Plan) printDiff(headerFmt string, path string, from string, to string) {
	fmt.Fprintf(p.out, headerFmt, path)
	diff := udiff.Unified("a/"+path, "b/"+path, from, to)
	if diff != "" && !strings.HasSuffix(diff, "\n") {
		diff += "\n"
	}
	fmt.Fprint(p.out, diff)
}

// canonicalJSON serializes a JSON object with two-space indentation and a
// trailing newline, the comparison form used for merge idempotence checks.
func canonicalJSON(obj map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

package plan

import (
	"fmt"

	"github.com/conn-castle/ocmigrate/internal/messages"
)

// Kind identifies the action variant.
type Kind int

const (
	// KindEnsureDir creates a directory (and parents) idempotently.
	KindEnsureDir Kind = iota
	// KindWriteText writes literal text content to a file.
	KindWriteText
	// KindMergeJSON applies a pure merge function to a JSON object file.
	KindMergeJSON
)

// MergeFunc produces the next JSON object from the current one. It must not
// mutate its argument.
type MergeFunc func(current map[string]any) map[string]any

// Action fully describes one intended filesystem change without performing
// it. Actions are immutable once added to a Plan.
type Action struct {
	Kind        Kind
	Path        string
	Description string

	// Content is the literal file content for KindWriteText.
	Content string
	// Merge is the update function for KindMergeJSON.
	Merge MergeFunc
}

// ConflictPolicy controls how existing destination files are handled on live
// runs.
type ConflictPolicy string

const (
	// ConflictSkip never overwrites an existing file.
	ConflictSkip ConflictPolicy = "skip"
	// ConflictOverwrite always proceeds after backing up.
	ConflictOverwrite ConflictPolicy = "overwrite"
	// ConflictPrompt asks for confirmation per conflicting file.
	ConflictPrompt ConflictPolicy = "prompt"
)

// ParseConflictPolicy validates a policy name from the CLI or config file.
func ParseConflictPolicy(value string) (ConflictPolicy, error) {
	switch ConflictPolicy(value) {
	case ConflictSkip, ConflictOverwrite, ConflictPrompt:
		return ConflictPolicy(value), nil
	default:
		return "", fmt.Errorf(messages.PlanInvalidConflictFmt, value)
	}
}

// Prompter asks for per-file overwrite confirmation under ConflictPrompt.
type Prompter interface {
	Overwrite(path string) (bool, error)
}

// PromptFunc adapts a function to the Prompter interface.
type PromptFunc func(path string) (bool, error)

// Overwrite calls the wrapped function.
func (f PromptFunc) Overwrite(path string) (bool, error) {
	return f(path)
}

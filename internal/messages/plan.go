package messages

// Plan executor messages and error formats.
const (
	// PlanLabelCreated labels a file created by an action.
	PlanLabelCreated  = "created"
	PlanLabelUpdated  = "updated"
	PlanLabelSkipped  = "skip"
	PlanLabelUpToDate = "up-to-date"
	PlanLabelMkdir    = "mkdir"
	PlanLabelCreate   = "create"
	PlanLabelError    = "error"

	// PlanDirExistsSuffix marks an ensure-directory action whose target already exists.
	PlanDirExistsSuffix = " (exists)"
	PlanSkipConflictFmt = "%s (conflict) %s\n"

	// PlanDiffHeaderFmt titles a dry-run diff block for a file.
	PlanDiffHeaderFmt     = "--- diff: %s ---\n"
	PlanNewFileHeaderFmt  = "--- new: %s ---\n"
	PlanJSONDiffHeaderFmt = "--- json diff: %s ---\n"

	PlanActionErrorFmt = "%s %s: %v\n"

	// PlanInvalidJSONFmt wraps a JSON source or destination that failed to parse.
	PlanInvalidJSONFmt = "invalid JSON at %s: %w"
	PlanReadFailedFmt  = "read %s: %w"
	PlanWriteFailedFmt = "write %s: %w"
	PlanMkdirFailedFmt = "create directory %s: %w"
	PlanBackupFailedFmt = "back up %s: %w"

	// PlanPromptRequired is returned when conflict policy is prompt but no prompter is configured.
	PlanPromptRequired = "conflict policy is prompt but no prompter is configured"

	// PlanInvalidConflictFmt rejects an unknown conflict policy name.
	PlanInvalidConflictFmt = "invalid conflict policy %q (valid: skip, overwrite, prompt)"

	// PlanSummaryHeader titles the run summary block.
	PlanSummaryHeader     = "Migration summary"
	PlanSummaryCreatedFmt = "  Created %d\n"
	PlanSummaryUpdatedFmt = "  Updated %d\n"
	PlanSummarySkippedFmt = "  Skipped %d\n"
	PlanSummaryErroredFmt = "  Errored %d\n"
	PlanBackupNoteFmt     = "Backups stored under: %s\n"
)

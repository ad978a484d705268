package messages

// CLI messages for the root command and its flags.
const (
	// RootUse is the CLI command name.
	RootUse = "ocmigrate"
	// RootShort is the short description for the root command.
	RootShort = "Migrate Claude Code configuration to OpenCode"
	RootLong  = "Convert a project's Claude Code agents, commands, permissions, and MCP servers into OpenCode's configuration format.\n\nWithout scope flags every part is migrated. Use --dry-run to preview the full set of changes without touching the filesystem."

	// HeaderTitle is the banner printed before a run.
	HeaderTitle      = "Claude Code -> OpenCode migration"
	HeaderContextFmt = "root=%s dry-run=%t conflict=%s target=%s\n"

	RootFlagRoot         = "Project root to migrate"
	RootFlagAgents       = "Migrate agent files from .claude/agents"
	RootFlagCommands     = "Migrate command files from .claude/commands"
	RootFlagPermissions  = "Migrate permission rules from .claude/settings.json"
	RootFlagMCP          = "Migrate MCP server registries"
	RootFlagAll          = "Migrate everything (default when no scope flag is set)"
	RootFlagIncludeLocal = "Union-merge permissions from .claude/settings.local.json"
	RootFlagTarget       = "Destination config to update: project or global"
	RootFlagDryRun       = "Show diffs without writing anything"
	RootFlagConflict     = "How to handle existing destination files: skip, overwrite, or prompt"
	RootFlagNoColor      = "Disable colored output"

	RootNoClaudeDir = "Note: .claude directory not found; continuing for MCP and global config if applicable."

	// PromptOverwriteFmt asks for per-file overwrite confirmation.
	PromptOverwriteFmt     = "File exists: %s. Overwrite?"
	PromptRequiresTerminal = "--conflict prompt requires an interactive terminal; use --conflict skip or --conflict overwrite"
	WarningLinePrefix      = "Warning: "
)

package messages

// Migration planning and discovery messages.
const (
	// MigrateEnsureAgentDir describes the agent destination directory action.
	MigrateEnsureAgentDir   = "Ensure .opencode/agent directory"
	MigrateEnsureCommandDir = "Ensure .opencode/command directory"
	MigrateAgentFileFmt     = "Migrate agent %s"
	MigrateCommandFileFmt   = "Migrate command %s"
	MigrateProjectConfig    = "Update project opencode.json"
	MigrateGlobalConfig     = "Update global opencode.json"

	// MigrateInvalidTargetFmt rejects an unknown destination config target.
	MigrateInvalidTargetFmt = "invalid target %q (valid: project, global)"
	MigrateRootRequired     = "project root is required"

	MigrateAgentReadWarnFmt      = "agent %s: %v"
	MigrateCommandReadWarnFmt    = "command %s: %v"
	MigratePermissionsWarnFmt    = "permission migration: %v"
	MigrateMCPWarnFmt            = "MCP migration: %v"
	MigrateResolveHomeFailedFmt  = "resolve home directory: %w"

	// DiscoverListFailedFmt wraps a source directory listing failure.
	DiscoverListFailedFmt = "list %s: %w"

	// ConfigInvalidFileFmt wraps a .ocmigrate.toml parse failure.
	ConfigInvalidFileFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "unrecognized keys in %s: %w"

	// TransformUnknownColorFmt warns about an unrecognized color value.
	TransformUnknownColorFmt     = "unknown color %q at %s; keeping as-is"
	TransformDroppedToolFmt      = "dropping unsupported tool %q"
	TransformUnknownMCPRuleFmt   = "unknown MCP pattern: %s"
	TransformDescriptionFallback = "Command"
)

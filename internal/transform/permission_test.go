package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/ocmigrate/internal/warnings"
)

func TestPermissionsDefaults(t *testing.T) {
	result := Permissions(nil, nil, nil)

	require.Equal(t, map[string]any{"*": "ask"}, result.Permission["bash"])
	require.Equal(t, "ask", result.Permission["edit"])
	require.Equal(t, "ask", result.Permission["write"])
	require.Equal(t, map[string]bool{
		"*":     false,
		"bash":  true,
		"edit":  true,
		"write": true,
	}, result.Tools)
}

func TestPermissionsDenyWinsOverAllow(t *testing.T) {
	rule := "Bash(git log:*)"
	result := Permissions([]string{rule}, []string{rule}, nil)

	bash := result.Permission["bash"].(map[string]any)
	require.Equal(t, "deny", bash["git log *"])
	require.Equal(t, "ask", bash["*"])
}

func TestPermissionsBashPatterns(t *testing.T) {
	result := Permissions([]string{"Bash(git log:*)", "Bash(pwd)"}, []string{"Bash(rm:*)"}, nil)

	bash := result.Permission["bash"].(map[string]any)
	require.Equal(t, "allow", bash["git log *"])
	require.Equal(t, "allow", bash["pwd"])
	require.Equal(t, "deny", bash["rm *"])
}

func TestPermissionsToolRules(t *testing.T) {
	result := Permissions([]string{"Read"}, []string{"WebFetch"}, nil)

	require.True(t, result.Tools["read"])
	require.Equal(t, "allow", result.Permission["read"])
	require.False(t, result.Tools["webfetch"])
	require.Equal(t, "deny", result.Permission["webfetch"])
}

func TestPermissionsMCPRules(t *testing.T) {
	result := Permissions([]string{"mcp__github__search"}, []string{"mcp__jira__create"}, nil)

	require.True(t, result.Tools["github_*"])
	require.False(t, result.Tools["jira_*"])
	_, present := result.Permission["github_*"]
	require.False(t, present)
}

func TestPermissionsMalformedMCPRule(t *testing.T) {
	warn := &warnings.Collector{}
	result := Permissions([]string{"mcp__broken"}, nil, warn)

	require.Len(t, warn.All(), 1)
	require.Contains(t, warn.All()[0].String(), "mcp__broken")
	_, present := result.Tools["broken_*"]
	require.False(t, present)
}

func TestPermissionsUnsupportedToolDropped(t *testing.T) {
	warn := &warnings.Collector{}
	result := Permissions([]string{"WebSearch"}, nil, warn)

	require.Len(t, warn.All(), 1)
	_, present := result.Tools["websearch"]
	require.False(t, present)
}

func TestPermissionsBlankRulesSkipped(t *testing.T) {
	result := Permissions([]string{"", "   "}, nil, nil)
	require.Len(t, result.Tools, 4)
}

// Package mapping holds the pure value mappers between the Claude Code and
// OpenCode schema families: tool names, model aliases, colors, and bash
// permission patterns. All lookup tables are fixed, process-wide constants.
package mapping

import (
	"regexp"
	"strings"
)

// colorHex maps Claude's named agent colors to OpenCode hex codes.
var colorHex = map[string]string{
	"blue":    "#3B82F6",
	"cyan":    "#06B6D4",
	"green":   "#22C55E",
	"yellow":  "#EAB308",
	"magenta": "#D946EF",
	"red":     "#EF4444",
}

// modelAliases maps Claude's short model names to fully qualified OpenCode
// model identifiers.
var modelAliases = map[string]string{
	"sonnet":     "anthropic/claude-sonnet-4-5",
	"opus":       "anthropic/claude-opus-4-5",
	"haiku":      "anthropic/claude-haiku-4-5",
	"sonnet-4.5": "anthropic/claude-sonnet-4-5",
	"opus-4.5":   "anthropic/claude-opus-4-5",
	"haiku-4.5":  "anthropic/claude-haiku-4-5",
}

// unsupportedTools lists Claude tools with no OpenCode equivalent.
// websearch has no counterpart; task is replaced by @mention/subagent.
var unsupportedTools = map[string]struct{}{
	"websearch": {},
	"task":      {},
}

var (
	mcpToolPattern  = regexp.MustCompile(`^mcp__([A-Za-z0-9_-]+)__([A-Za-z0-9_-]+)$`)
	hexColorPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
)

// NormalizeToolName maps a Claude tool token to its OpenCode form. Tokens in
// the unsupported set yield ok=false and should be dropped by the caller.
// mcp__<server>__<tool> tokens become <server>_<tool>; everything else is
// lower-cased unchanged.
func NormalizeToolName(token string) (string, bool) {
	lower := strings.ToLower(token)
	if _, unsupported := unsupportedTools[lower]; unsupported {
		return "", false
	}
	if m := mcpToolPattern.FindStringSubmatch(token); m != nil {
		return strings.ToLower(m[1]) + "_" + strings.ToLower(m[2]), true
	}
	return lower, true
}

// SplitMCPRule extracts the server and tool parts of an mcp__<server>__<tool>
// token. ok is false when the token does not match the pattern.
func SplitMCPRule(token string) (server string, tool string, ok bool) {
	m := mcpToolPattern.FindStringSubmatch(token)
	if m == nil {
		return "", "", false
	}
	return strings.ToLower(m[1]), strings.ToLower(m[2]), true
}

// MapModel maps a Claude model value to an OpenCode model identifier. Empty
// input yields ok=false. Values already containing a provider prefix ("/")
// pass through unchanged, as do aliases missing from the table.
func MapModel(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	if strings.Contains(trimmed, "/") {
		return trimmed, true
	}
	if mapped, found := modelAliases[strings.ToLower(trimmed)]; found {
		return mapped, true
	}
	return trimmed, true
}

// EnsureColorHex maps a color value to a #rrggbb hex form. Empty input yields
// ok=false. Named colors use the fixed table; 6-hex-digit values (with or
// without a leading #) are normalized to lower case with a leading #. Any
// other value passes through unchanged with known=false so the caller can
// warn.
func EnsureColorHex(value string) (hex string, known bool, ok bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false, false
	}
	lower := strings.ToLower(trimmed)
	if mapped, found := colorHex[lower]; found {
		return mapped, true, true
	}
	if hexColorPattern.MatchString(lower) {
		if strings.HasPrefix(lower, "#") {
			return lower, true, true
		}
		return "#" + lower, true, true
	}
	return value, false, true
}

// ParseBashPattern converts a Bash(...) permission rule into an OpenCode bash
// pattern: Bash(git log:*) becomes "git log *". Anything not wrapped in
// Bash(...) yields ok=false.
func ParseBashPattern(item string) (string, bool) {
	if !strings.HasPrefix(item, "Bash(") || !strings.HasSuffix(item, ")") {
		return "", false
	}
	inner := strings.TrimSpace(item[len("Bash(") : len(item)-1])
	return strings.ReplaceAll(inner, ":*", " *"), true
}

package transform

import (
	"strings"

	"github.com/conn-castle/ocmigrate/internal/mapping"
	"github.com/conn-castle/ocmigrate/internal/messages"
	"github.com/conn-castle/ocmigrate/internal/warnings"
)

const (
	modeAllow = "allow"
	modeDeny  = "deny"
	modeAsk   = "ask"
)

// PermissionResult is the OpenCode permission object plus the capability map
// derived from Claude permission rules.
type PermissionResult struct {
	// Permission maps subsystem names to a mode string, except "bash" which
	// holds a nested pattern-to-mode table.
	Permission map[string]any
	// Tools maps capability tokens to enablement.
	Tools map[string]bool
}

// Permissions converts Claude allow/deny rule lists into an OpenCode
// permission object and capability map. All allow rules are applied before
// any deny rule, so deny always wins on a conflicting key.
func Permissions(allow []string, deny []string, warn *warnings.Collector) PermissionResult {
	result := PermissionResult{
		Permission: map[string]any{
			"bash":  map[string]any{"*": modeAsk},
			"edit":  modeAsk,
			"write": modeAsk,
		},
		Tools: map[string]bool{
			"*":     false,
			"bash":  true,
			"edit":  true,
			"write": true,
		},
	}

	applyPermissionRules(&result, allow, modeAllow, warn)
	applyPermissionRules(&result, deny, modeDeny, warn)
	return result
}

func applyPermissionRules(result *PermissionResult, rules []string, mode string, warn *warnings.Collector) {
	for _, raw := range rules {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if pattern, isBash := mapping.ParseBashPattern(raw); isBash {
			bashTable(result.Permission)[pattern] = mode
			continue
		}

		if strings.HasPrefix(raw, "mcp__") {
			server, _, wellFormed := mapping.SplitMCPRule(raw)
			if !wellFormed {
				warn.Addf(messages.TransformUnknownMCPRuleFmt, raw)
				continue
			}
			result.Tools[server+"_*"] = mode == modeAllow
			continue
		}

		tool, supported := mapping.NormalizeToolName(raw)
		if !supported {
			warn.Addf(messages.TransformDroppedToolFmt, raw)
			continue
		}
		result.Tools[tool] = mode == modeAllow
		result.Permission[tool] = mode
	}
}

// bashTable returns the nested bash pattern table, seeding the wildcard
// default when the table is missing or not a mapping.
func bashTable(permission map[string]any) map[string]any {
	if table, isMap := permission["bash"].(map[string]any); isMap {
		return table
	}
	table := map[string]any{"*": modeAsk}
	permission["bash"] = table
	return table
}

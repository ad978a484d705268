package migrate

import (
	"github.com/conn-castle/ocmigrate/internal/plan"
	"github.com/conn-castle/ocmigrate/internal/transform"
)

const modeAsk = "ask"

// ConfigMerge returns the additive merge applied to an opencode.json object.
// Every existing key is preserved; migration-supplied keys are inserted only
// where absent, so an operator's customizations are never overwritten. The
// nested bash permission table and the capability map always end up with a
// wildcard default entry.
func ConfigMerge(addPermission map[string]any, addTools map[string]bool, addServers map[string]transform.ServerConfig) plan.MergeFunc {
	return func(current map[string]any) map[string]any {
		next := make(map[string]any, len(current)+3)
		for key, value := range current {
			next[key] = value
		}

		permission := shallowCopy(next["permission"])
		bash := shallowCopy(permission["bash"])
		if addBash, isMap := addPermission["bash"].(map[string]any); isMap {
			for pattern, mode := range addBash {
				if _, exists := bash[pattern]; !exists {
					bash[pattern] = mode
				}
			}
		}
		if _, exists := bash["*"]; !exists {
			bash["*"] = modeAsk
		}
		permission["bash"] = bash
		for key, value := range addPermission {
			if key == "bash" {
				continue
			}
			if _, exists := permission[key]; !exists {
				permission[key] = value
			}
		}

		tools := shallowCopy(next["tools"])
		if _, exists := tools["*"]; !exists {
			tools["*"] = false
		}
		for token, enabled := range addTools {
			if _, exists := tools[token]; !exists {
				tools[token] = enabled
			}
		}

		next["permission"] = permission
		next["tools"] = tools

		if len(addServers) > 0 {
			mcp := shallowCopy(next["mcp"])
			for name, cfg := range addServers {
				if _, exists := mcp[name]; !exists {
					mcp[name] = cfg
				}
			}
			next["mcp"] = mcp
		}

		return next
	}
}

// shallowCopy returns a fresh map with the entries of value when it is a JSON
// object, and an empty map otherwise.
func shallowCopy(value any) map[string]any {
	out := make(map[string]any)
	if m, isMap := value.(map[string]any); isMap {
		for key, item := range m {
			out[key] = item
		}
	}
	return out
}

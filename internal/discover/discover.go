// Package discover locates and loads the Claude Code configuration sources
// for a project: agent and command markdown files, the settings permission
// lists, and the project and user-global MCP server registries.
package discover

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/ocmigrate/internal/messages"
)

// ErrInvalidJSON wraps JSON source files that failed to parse. The wrapped
// error names the offending path.
var ErrInvalidJSON = errors.New("invalid JSON")

// homeDirFunc resolves the user's home directory; overridable in tests.
var homeDirFunc = homedir.Dir

// AgentFiles returns the sorted agent markdown files under .claude/agents.
func AgentFiles(root string) ([]string, error) {
	return markdownFiles(filepath.Join(root, ".claude", "agents"))
}

// CommandFiles returns the sorted command markdown files under .claude/commands.
func CommandFiles(root string) ([]string, error) {
	return markdownFiles(filepath.Join(root, ".claude", "commands"))
}

func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.DiscoverListFailedFmt, dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Settings holds the permission rule lists from .claude/settings.json.
type Settings struct {
	Allow []string
	Deny  []string
}

// LoadSettings reads the project settings permission lists. With includeLocal
// the allow/deny lists of settings.local.json are union-merged (sorted,
// deduplicated) into the base lists.
func LoadSettings(root string, includeLocal bool) (Settings, error) {
	base, err := loadJSONFile(filepath.Join(root, ".claude", "settings.json"))
	if err != nil {
		return Settings{}, err
	}
	settings := Settings{
		Allow: permissionList(base, "allow"),
		Deny:  permissionList(base, "deny"),
	}
	if !includeLocal {
		return settings, nil
	}

	local, err := loadJSONFile(filepath.Join(root, ".claude", "settings.local.json"))
	if err != nil {
		return Settings{}, err
	}
	if _, present := local["permissions"]; present {
		settings.Allow = unionSorted(settings.Allow, permissionList(local, "allow"))
		settings.Deny = unionSorted(settings.Deny, permissionList(local, "deny"))
	}
	return settings, nil
}

func permissionList(settings map[string]any, key string) []string {
	permissions, isMap := settings["permissions"].(map[string]any)
	if !isMap {
		return nil
	}
	raw, isList := permissions[key].([]any)
	if !isList {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if rule, isString := item.(string); isString {
			out = append(out, rule)
		}
	}
	return out
}

func unionSorted(a []string, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, item := range a {
		set[item] = struct{}{}
	}
	for _, item := range b {
		set[item] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for item := range set {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// LoadMCPServers merges the user-global (~/.claude.json) and project
// (.mcp.json) MCP server registries; project entries override global entries
// of the same name.
func LoadMCPServers(root string) (map[string]any, error) {
	servers := make(map[string]any)

	home, err := homeDirFunc()
	if err != nil {
		return nil, fmt.Errorf(messages.MigrateResolveHomeFailedFmt, err)
	}
	global, err := loadJSONFile(filepath.Join(home, ".claude.json"))
	if err != nil {
		return nil, err
	}
	collectServers(global, servers)

	project, err := loadJSONFile(filepath.Join(root, ".mcp.json"))
	if err != nil {
		return nil, err
	}
	collectServers(project, servers)

	return servers, nil
}

func collectServers(obj map[string]any, into map[string]any) {
	registry, isMap := obj["mcpServers"].(map[string]any)
	if !isMap || len(registry) == 0 {
		registry, isMap = obj["mcp"].(map[string]any)
		if !isMap {
			return
		}
	}
	for name, cfg := range registry {
		into[name] = cfg
	}
}

// loadJSONFile reads a JSON object file. A missing file yields an empty
// object; malformed JSON is a typed failure naming the path.
func loadJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf(messages.PlanReadFailedFmt, path, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrInvalidJSON, path, err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

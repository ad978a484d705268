package discover

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestAgentFilesMissingDir(t *testing.T) {
	files, err := AgentFiles(t.TempDir())
	if err != nil || files != nil {
		t.Fatalf("missing dir should yield no files: %v %v", files, err)
	}
}

func TestAgentFilesSortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".claude", "agents")
	writeFile(t, filepath.Join(dir, "zeta.md"), "z")
	writeFile(t, filepath.Join(dir, "alpha.md"), "a")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not markdown")
	if err := os.MkdirAll(filepath.Join(dir, "nested.md"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := AgentFiles(root)
	if err != nil {
		t.Fatalf("AgentFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "alpha.md"),
		filepath.Join(dir, "zeta.md"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("got %v, want %v", files, want)
	}
}

func TestLoadSettings(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "settings.json"),
		`{"permissions": {"allow": ["Read", "Bash(git log:*)"], "deny": ["WebFetch"]}}`)

	settings, err := LoadSettings(root, false)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !reflect.DeepEqual(settings.Allow, []string{"Read", "Bash(git log:*)"}) {
		t.Fatalf("unexpected allow: %v", settings.Allow)
	}
	if !reflect.DeepEqual(settings.Deny, []string{"WebFetch"}) {
		t.Fatalf("unexpected deny: %v", settings.Deny)
	}
}

func TestLoadSettingsMissingFiles(t *testing.T) {
	settings, err := LoadSettings(t.TempDir(), true)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.Allow != nil || settings.Deny != nil {
		t.Fatalf("missing settings should yield empty lists: %+v", settings)
	}
}

func TestLoadSettingsIncludeLocal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "settings.json"),
		`{"permissions": {"allow": ["Read", "Grep"]}}`)
	writeFile(t, filepath.Join(root, ".claude", "settings.local.json"),
		`{"permissions": {"allow": ["Grep", "Edit"], "deny": ["WebFetch"]}}`)

	settings, err := LoadSettings(root, true)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !reflect.DeepEqual(settings.Allow, []string{"Edit", "Grep", "Read"}) {
		t.Fatalf("local allow should union sorted: %v", settings.Allow)
	}
	if !reflect.DeepEqual(settings.Deny, []string{"WebFetch"}) {
		t.Fatalf("unexpected deny: %v", settings.Deny)
	}
}

func TestLoadSettingsLocalWithoutPermissionsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".claude", "settings.json"),
		`{"permissions": {"allow": ["Read"]}}`)
	writeFile(t, filepath.Join(root, ".claude", "settings.local.json"),
		`{"model": "opus"}`)

	settings, err := LoadSettings(root, true)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !reflect.DeepEqual(settings.Allow, []string{"Read"}) {
		t.Fatalf("base list should survive untouched: %v", settings.Allow)
	}
}

func TestLoadSettingsMalformed(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".claude", "settings.json")
	writeFile(t, path, "{broken")

	_, err := LoadSettings(root, false)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestLoadMCPServersProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	root := t.TempDir()
	restore := homeDirFunc
	homeDirFunc = func() (string, error) { return home, nil }
	t.Cleanup(func() { homeDirFunc = restore })

	writeFile(t, filepath.Join(home, ".claude.json"),
		`{"mcpServers": {"tools": {"command": "global"}, "extra": {"command": "keep"}}}`)
	writeFile(t, filepath.Join(root, ".mcp.json"),
		`{"mcpServers": {"tools": {"command": "project"}}}`)

	servers, err := LoadMCPServers(root)
	if err != nil {
		t.Fatalf("LoadMCPServers: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("unexpected registry: %v", servers)
	}
	tools := servers["tools"].(map[string]any)
	if tools["command"] != "project" {
		t.Fatalf("project entry should override global: %v", tools)
	}
	if _, present := servers["extra"]; !present {
		t.Fatalf("global-only entry should survive")
	}
}

func TestLoadMCPServersFallbackKey(t *testing.T) {
	home := t.TempDir()
	root := t.TempDir()
	restore := homeDirFunc
	homeDirFunc = func() (string, error) { return home, nil }
	t.Cleanup(func() { homeDirFunc = restore })

	writeFile(t, filepath.Join(root, ".mcp.json"),
		`{"mcp": {"search": {"type": "sse"}}}`)

	servers, err := LoadMCPServers(root)
	if err != nil {
		t.Fatalf("LoadMCPServers: %v", err)
	}
	if _, present := servers["search"]; !present {
		t.Fatalf("mcp fallback key not read: %v", servers)
	}
}

func TestLoadMCPServersMalformedGlobal(t *testing.T) {
	home := t.TempDir()
	restore := homeDirFunc
	homeDirFunc = func() (string, error) { return home, nil }
	t.Cleanup(func() { homeDirFunc = restore })

	writeFile(t, filepath.Join(home, ".claude.json"), "{broken")
	_, err := LoadMCPServers(t.TempDir())
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("expected ErrInvalidJSON, got %v", err)
	}
}

package migrate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/ocmigrate/internal/transform"
)

func TestConfigMergeIntoEmpty(t *testing.T) {
	merge := ConfigMerge(
		map[string]any{
			"bash": map[string]any{"*": "ask", "git log *": "allow"},
			"read": "allow",
		},
		map[string]bool{"*": false, "bash": true, "read": true},
		nil,
	)

	next := merge(map[string]any{})
	permission := next["permission"].(map[string]any)
	bash := permission["bash"].(map[string]any)
	require.Equal(t, "ask", bash["*"])
	require.Equal(t, "allow", bash["git log *"])
	require.Equal(t, "allow", permission["read"])
	tools := next["tools"].(map[string]any)
	require.Equal(t, false, tools["*"])
	require.Equal(t, true, tools["bash"])
	_, present := next["mcp"]
	require.False(t, present)
}

func TestConfigMergeNeverOverwrites(t *testing.T) {
	merge := ConfigMerge(
		map[string]any{
			"bash": map[string]any{"git log *": "allow"},
			"read": "allow",
		},
		map[string]bool{"read": true},
		map[string]transform.ServerConfig{
			"tools": {Type: transform.ServerKindLocal, Command: []string{"npx"}, Enabled: true},
		},
	)

	current := map[string]any{
		"theme": "dark",
		"permission": map[string]any{
			"bash": map[string]any{"git log *": "deny"},
			"read": "deny",
		},
		"tools": map[string]any{"read": false},
		"mcp":   map[string]any{"tools": map[string]any{"type": "remote"}},
	}
	next := merge(current)

	require.Equal(t, "dark", next["theme"])
	permission := next["permission"].(map[string]any)
	bash := permission["bash"].(map[string]any)
	require.Equal(t, "deny", bash["git log *"])
	require.Equal(t, "ask", bash["*"])
	require.Equal(t, "deny", permission["read"])
	tools := next["tools"].(map[string]any)
	require.Equal(t, false, tools["read"])
	require.Equal(t, false, tools["*"])
	mcp := next["mcp"].(map[string]any)
	existing := mcp["tools"].(map[string]any)
	require.Equal(t, "remote", existing["type"])
}

func TestConfigMergeDoesNotMutateCurrent(t *testing.T) {
	merge := ConfigMerge(
		map[string]any{"bash": map[string]any{"ls *": "allow"}},
		map[string]bool{"grep": true},
		nil,
	)
	current := map[string]any{
		"permission": map[string]any{"bash": map[string]any{}},
		"tools":      map[string]any{},
	}
	_ = merge(current)

	bash := current["permission"].(map[string]any)["bash"].(map[string]any)
	require.Empty(t, bash)
	require.Empty(t, current["tools"].(map[string]any))
}

func TestConfigMergeGuaranteesWildcards(t *testing.T) {
	merge := ConfigMerge(map[string]any{}, map[string]bool{}, nil)
	next := merge(map[string]any{})

	bash := next["permission"].(map[string]any)["bash"].(map[string]any)
	require.Equal(t, "ask", bash["*"])
	tools := next["tools"].(map[string]any)
	require.Equal(t, false, tools["*"])
}

func TestConfigMergeAddsNewServers(t *testing.T) {
	merge := ConfigMerge(map[string]any{}, map[string]bool{}, map[string]transform.ServerConfig{
		"search": {Type: transform.ServerKindRemote, URL: "https://x/sse", Enabled: true},
	})
	next := merge(map[string]any{})

	mcp := next["mcp"].(map[string]any)
	cfg, isServer := mcp["search"].(transform.ServerConfig)
	require.True(t, isServer)
	require.Equal(t, "https://x/sse", cfg.URL)
}

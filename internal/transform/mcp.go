package transform

import (
	"fmt"
	"strings"
)

// Server transport kinds on the OpenCode side.
const (
	ServerKindLocal  = "local"
	ServerKindRemote = "remote"
)

// ServerConfig is an OpenCode MCP server registry entry.
type ServerConfig struct {
	Type        string            `json:"type"`
	Command     []string          `json:"command,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	URL         string            `json:"url,omitempty"`
	Enabled     bool              `json:"enabled"`
}

// Servers converts a Claude MCP server registry into OpenCode form. Entries
// whose config is not a mapping are skipped. stdio transports become local
// servers, sse/http/https become remote; unknown transports fall back to
// local.
func Servers(src map[string]any) map[string]ServerConfig {
	out := make(map[string]ServerConfig, len(src))
	for name, raw := range src {
		cfg, isMap := raw.(map[string]any)
		if !isMap {
			continue
		}
		out[name] = serverEntry(cfg)
	}
	return out
}

func serverEntry(cfg map[string]any) ServerConfig {
	dest := ServerConfig{
		Type:    destinationKind(cfg),
		Enabled: true,
	}

	if command := commandList(cfg); len(command) > 0 && dest.Type == ServerKindLocal {
		dest.Command = command
	}
	if env := environmentMap(cfg); len(env) > 0 {
		dest.Environment = env
	}
	// The URL carries over regardless of destination kind.
	for _, key := range []string{"url", "baseUrl", "endpoint"} {
		if value, present := cfg[key]; present {
			if url, isString := value.(string); isString {
				dest.URL = url
			}
			break
		}
	}
	return dest
}

// destinationKind reads the transport from type, then transport, defaulting
// to stdio, and maps it to the OpenCode server kind.
func destinationKind(cfg map[string]any) string {
	transport := "stdio"
	if value, present := cfg["type"]; present && value != nil {
		transport = fmt.Sprint(value)
	} else if value, present := cfg["transport"]; present && value != nil {
		transport = fmt.Sprint(value)
	}
	switch strings.ToLower(transport) {
	case "sse", "http", "https":
		return ServerKindRemote
	default:
		return ServerKindLocal
	}
}

// commandList normalizes the source command into an ordered
// command-plus-arguments list. A string command is concatenated with the args
// list; a list command is used as-is.
func commandList(cfg map[string]any) []string {
	switch command := cfg["command"].(type) {
	case string:
		out := []string{command}
		if args, isList := cfg["args"].([]any); isList {
			for _, arg := range args {
				out = append(out, fmt.Sprint(arg))
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(command))
		for _, part := range command {
			out = append(out, fmt.Sprint(part))
		}
		return out
	default:
		return nil
	}
}

// environmentMap reads env, falling back to environment.
func environmentMap(cfg map[string]any) map[string]string {
	raw, isMap := cfg["env"].(map[string]any)
	if !isMap || len(raw) == 0 {
		raw, isMap = cfg["environment"].(map[string]any)
		if !isMap {
			return nil
		}
	}
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		out[key] = fmt.Sprint(value)
	}
	return out
}

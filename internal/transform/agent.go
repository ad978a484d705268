// Package transform converts Claude Code configuration artifacts — agent and
// command markdown, permission rules, MCP server registries — into their
// OpenCode equivalents. All transforms are pure: they take source content and
// return destination content, collecting non-fatal findings in a
// warnings.Collector.
package transform

import (
	"fmt"

	"github.com/conn-castle/ocmigrate/internal/frontmatter"
	"github.com/conn-castle/ocmigrate/internal/mapping"
	"github.com/conn-castle/ocmigrate/internal/messages"
	"github.com/conn-castle/ocmigrate/internal/warnings"
)

// AgentDocument converts a Claude agent markdown document into OpenCode
// subagent form. The source name field is intentionally dropped; OpenCode
// derives agent identity from the filename. filename is used only for
// warning context.
func AgentDocument(doc string, filename string, warn *warnings.Collector) string {
	meta, body := frontmatter.Parse(doc)
	if meta == nil {
		meta = frontmatter.New()
	}

	description, _ := meta.GetString("description")
	toolsValue, toolsPresent := meta.Get("tools")
	tools := resolveToolsSpec(toolsValue, toolsPresent).capabilityMap(warn)

	out := frontmatter.New()
	out.Set("mode", "subagent")
	out.Set("description", description)
	out.Set("tools", tools)

	if model, present := meta.GetString("model"); present {
		if mapped, hasModel := mapping.MapModel(model); hasModel {
			out.Set("model", mapped)
		}
	}
	if color, present := meta.GetString("color"); present {
		hex, known, hasColor := mapping.EnsureColorHex(color)
		if hasColor {
			if !known {
				warn.Addf(messages.TransformUnknownColorFmt, color, fmt.Sprintf("agent %s", filename))
			}
			out.Set("color", hex)
		}
	}

	return frontmatter.Serialize(out, body)
}

package transform

import (
	"fmt"
	"strings"

	"github.com/conn-castle/ocmigrate/internal/frontmatter"
	"github.com/conn-castle/ocmigrate/internal/mapping"
	"github.com/conn-castle/ocmigrate/internal/messages"
	"github.com/conn-castle/ocmigrate/internal/warnings"
)

// toolsSpecKind tags the resolved form of the polymorphic source tools field.
type toolsSpecKind int

const (
	toolsSpecAbsent toolsSpecKind = iota
	toolsSpecList
	toolsSpecMapping
)

// toolsSpec is the source tools field resolved once at transform entry.
// Claude accepts a comma-separated string, a list, or a mapping; string and
// list collapse to the list form here.
type toolsSpec struct {
	kind    toolsSpecKind
	items   []string
	mapping *frontmatter.Metadata
}

// resolveToolsSpec classifies the raw frontmatter tools value.
func resolveToolsSpec(value any, present bool) toolsSpec {
	if !present {
		return toolsSpec{kind: toolsSpecAbsent}
	}
	switch v := value.(type) {
	case string:
		items := make([]string, 0)
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		return toolsSpec{kind: toolsSpecList, items: items}
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, strings.TrimSpace(fmt.Sprint(item)))
		}
		return toolsSpec{kind: toolsSpecList, items: items}
	case *frontmatter.Metadata:
		return toolsSpec{kind: toolsSpecMapping, mapping: v}
	default:
		return toolsSpec{kind: toolsSpecAbsent}
	}
}

// capabilityMap builds the destination tools mapping: a wildcard default
// entry followed by each normalized tool. Unsupported tools are dropped with
// a warning.
func (s toolsSpec) capabilityMap(warn *warnings.Collector) *frontmatter.Metadata {
	out := frontmatter.New()
	out.Set("*", false)

	switch s.kind {
	case toolsSpecAbsent:
		return out
	case toolsSpecList:
		for _, raw := range s.items {
			name, supported := mapping.NormalizeToolName(raw)
			if !supported {
				warn.Addf(messages.TransformDroppedToolFmt, raw)
				continue
			}
			out.Set(name, true)
		}
		return out
	case toolsSpecMapping:
		if wildcard, present := s.mapping.Get("*"); present {
			out.Set("*", truthy(wildcard))
		}
		for _, key := range s.mapping.Keys() {
			if key == "*" {
				continue
			}
			name, supported := mapping.NormalizeToolName(key)
			if !supported {
				warn.Addf(messages.TransformDroppedToolFmt, key)
				continue
			}
			value, _ := s.mapping.Get(key)
			out.Set(name, truthy(value))
		}
		return out
	}
	return out
}

// truthy interprets a decoded YAML scalar as a boolean enablement flag.
func truthy(value any) bool {
	b, isBool := value.(bool)
	return isBool && b
}

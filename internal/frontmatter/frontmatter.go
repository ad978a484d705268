// Package frontmatter parses and emits YAML frontmatter blocks delimited by
// `---` lines. Metadata keys keep their document order on both parse and
// serialize; order carries intent and is never alphabetized.
package frontmatter

import (
	"bytes"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// maxScanLines bounds the search for the closing delimiter.
const maxScanLines = 2000

const delimiter = "---"

// Metadata is an insertion-ordered string-keyed mapping. Values are scalars,
// []any lists, or nested *Metadata mappings.
type Metadata struct {
	keys   []string
	values map[string]any
}

// New returns an empty Metadata.
func New() *Metadata {
	return &Metadata{values: make(map[string]any)}
}

// Set stores value under key, appending the key on first use and keeping its
// original position on overwrite.
func (m *Metadata) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (any, bool) {
	if m == nil || m.values == nil {
		return nil, false
	}
	value, exists := m.values[key]
	return value, exists
}

// GetString returns the value under key when it is a string scalar.
func (m *Metadata) GetString(key string) (string, bool) {
	value, exists := m.Get(key)
	if !exists {
		return "", false
	}
	s, isString := value.(string)
	return s, isString
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, exists := m.Get(key)
	return exists
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Parse splits a document into its frontmatter metadata and body. A document
// opens with metadata only when its first line is a `---` delimiter; the scan
// for the closing delimiter is bounded to maxScanLines. Malformed or
// non-mapping metadata degrades to an empty mapping rather than failing.
// When no block is present the metadata is nil and the whole document is the
// body. Trailing-newline presence of the body is preserved.
func Parse(doc string) (*Metadata, string) {
	lines, hadTrailingNewline := splitLines(doc)
	if len(lines) == 0 || !isDelimiterLine(lines[0]) || !strings.HasPrefix(lines[0], delimiter) {
		return nil, doc
	}

	closing := -1
	bound := len(lines)
	if bound > maxScanLines {
		bound = maxScanLines
	}
	for i := 1; i < bound; i++ {
		if isDelimiterLine(lines[i]) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, doc
	}

	block := strings.Join(lines[1:closing], "\n") + "\n"
	body := strings.Join(lines[closing+1:], "\n")
	if hadTrailingNewline {
		body += "\n"
	}
	return parseBlock(block), body
}

// parseBlock parses the delimited content as an ordered mapping, degrading to
// an empty mapping on any malformed input.
func parseBlock(block string) *Metadata {
	if strings.TrimSpace(block) == "" {
		return New()
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		return New()
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return New()
	}
	meta, err := metadataFromNode(root.Content[0])
	if err != nil {
		return New()
	}
	return meta
}

func metadataFromNode(mapping *yaml.Node) (*Metadata, error) {
	meta := New()
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]
		value, err := valueFromNode(valueNode)
		if err != nil {
			return nil, err
		}
		meta.Set(keyNode.Value, value)
	}
	return meta, nil
}

func valueFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return metadataFromNode(node)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := valueFromNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// Serialize emits a frontmatter document: the delimiter, the metadata keys in
// insertion order, the closing delimiter, then the body. A non-empty body is
// always newline-terminated in the output.
func Serialize(meta *Metadata, body string) string {
	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	if meta.Len() > 0 {
		sb.Write(marshalOrdered(meta))
	}
	sb.WriteString(delimiter + "\n")
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	sb.WriteString(body)
	return sb.String()
}

func marshalOrdered(meta *Metadata) []byte {
	node, err := nodeFromMetadata(meta)
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil
	}
	_ = enc.Close()
	return buf.Bytes()
}

func nodeFromMetadata(meta *Metadata) (*yaml.Node, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range meta.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valueNode, err := nodeFromValue(meta.values[key])
		if err != nil {
			return nil, err
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping, nil
}

func nodeFromValue(value any) (*yaml.Node, error) {
	if nested, isMeta := value.(*Metadata); isMeta {
		return nodeFromMetadata(nested)
	}
	if items, isList := value.([]any); isList {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			child, err := nodeFromValue(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	}
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}

// isDelimiterLine reports whether a line is a `---` delimiter, ignoring
// surrounding whitespace.
func isDelimiterLine(line string) bool {
	return strings.TrimSpace(line) == delimiter
}

// splitLines splits doc on newlines the way Python's splitlines does: the
// final empty fragment after a trailing newline is dropped, and its presence
// is reported separately.
func splitLines(doc string) ([]string, bool) {
	if doc == "" {
		return nil, false
	}
	hadTrailingNewline := strings.HasSuffix(doc, "\n")
	trimmed := strings.TrimSuffix(doc, "\n")
	if trimmed == "" {
		return []string{""}, hadTrailingNewline
	}
	return strings.Split(trimmed, "\n"), hadTrailingNewline
}

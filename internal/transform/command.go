package transform

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/conn-castle/ocmigrate/internal/frontmatter"
	"github.com/conn-castle/ocmigrate/internal/mapping"
	"github.com/conn-castle/ocmigrate/internal/messages"
)

var (
	headingPattern = regexp.MustCompile(`^\s*#\s+(.+)$`)
	wordBreakRuns  = regexp.MustCompile(`[_\-]+`)
)

// CommandDocument converts a Claude command markdown document into OpenCode
// form. The model carries over only when the source specified one; the
// description falls back from frontmatter to the first level-1 heading to a
// title derived from the filename.
func CommandDocument(doc string, filename string) string {
	meta, body := frontmatter.Parse(doc)

	out := frontmatter.New()
	if meta != nil {
		if model, present := meta.GetString("model"); present {
			if mapped, hasModel := mapping.MapModel(model); hasModel {
				out.Set("model", mapped)
			}
		}
	}

	description := ""
	if meta != nil {
		description, _ = meta.GetString("description")
	}
	if description == "" {
		description = descriptionForCommand(body, filename)
	}
	out.Set("description", description)

	return frontmatter.Serialize(out, body)
}

// descriptionForCommand extracts the first level-1 heading from the body,
// falling back to a title derived from the filename.
func descriptionForCommand(body string, filename string) string {
	for _, line := range strings.Split(body, "\n") {
		if m := headingPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = strings.TrimSpace(wordBreakRuns.ReplaceAllString(name, " "))
	if title := titleCase(name); title != "" {
		return title
	}
	return messages.TransformDescriptionFallback
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

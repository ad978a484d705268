package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/ocmigrate/internal/frontmatter"
)

func TestCommandDocumentFrontmatterDescription(t *testing.T) {
	doc := "---\ndescription: Ship the release\nmodel: opus\n---\nDo the thing.\n"
	out := CommandDocument(doc, "ship.md")

	meta, body := frontmatter.Parse(out)
	require.Equal(t, "Do the thing.\n", body)
	require.Equal(t, []string{"model", "description"}, meta.Keys())
	model, _ := meta.GetString("model")
	require.Equal(t, "anthropic/claude-opus-4-5", model)
	description, _ := meta.GetString("description")
	require.Equal(t, "Ship the release", description)
}

func TestCommandDocumentHeadingFallback(t *testing.T) {
	doc := "# Ship It\n\nSteps follow.\n"
	out := CommandDocument(doc, "ship.md")

	meta, _ := frontmatter.Parse(out)
	require.Equal(t, []string{"description"}, meta.Keys())
	description, _ := meta.GetString("description")
	require.Equal(t, "Ship It", description)
}

func TestCommandDocumentFilenameFallback(t *testing.T) {
	out := CommandDocument("No headings here.\n", "weekly_status-report.md")

	meta, _ := frontmatter.Parse(out)
	description, _ := meta.GetString("description")
	require.Equal(t, "Weekly Status Report", description)
}

func TestCommandDocumentDescriptionLastResort(t *testing.T) {
	out := CommandDocument("", "___.md")

	meta, _ := frontmatter.Parse(out)
	description, _ := meta.GetString("description")
	require.Equal(t, "Command", description)
}

func TestCommandDocumentNoModelWhenAbsent(t *testing.T) {
	doc := "---\ndescription: Tidy up\n---\nbody\n"
	out := CommandDocument(doc, "tidy.md")

	meta, _ := frontmatter.Parse(out)
	require.False(t, meta.Has("model"))
}

func TestCommandDocumentSecondPassStable(t *testing.T) {
	doc := "---\ndescription: Tidy up\nmodel: anthropic/claude-haiku-4-5\n---\nbody\n"
	first := CommandDocument(doc, "tidy.md")
	second := CommandDocument(first, "tidy.md")
	require.Equal(t, first, second)
}

package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dpshade/prompt-catalog/internal/placeholder"
)

// RenderMarkdown describes the prompt as a markdown document: heading,
// category line, description, the rendered text and the marker checklist.
func (r *Renderer) RenderMarkdown(fills placeholder.FillMap) string {
	var b strings.Builder

	title := r.prompt.Name
	if title == "" {
		title = r.prompt.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	category := r.prompt.Category
	if sub := r.prompt.SubcategoryOr(""); sub != "" {
		category += " / " + sub
	}
	fmt.Fprintf(&b, "*%s*", category)
	if uses := r.prompt.Uses(); uses > 0 {
		fmt.Fprintf(&b, " · used %d×", uses)
	}
	b.WriteString("\n\n")

	if desc := r.prompt.DescriptionOr(""); desc != "" {
		fmt.Fprintf(&b, "> %s\n\n", desc)
	}

	fmt.Fprintf(&b, "```\n%s\n```\n", r.RenderText(fills))

	if markers := r.template.Markers(); len(markers) > 0 {
		b.WriteString("\n## Placeholders\n\n")
		for _, m := range markers {
			box := " "
			if fills.Filled(m) {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, m)
		}
	}

	return b.String()
}

// NewMarkdownRenderer creates a glamour renderer with improved contrast handling
func NewMarkdownRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	switch {
	case profile == termenv.Ascii:
		styleOption = glamour.WithStandardStyle("notty")
	case profile != termenv.TrueColor && profile != termenv.ANSI256:
		// Fallback to auto-style for limited color terminals
		styleOption = glamour.WithAutoStyle()
	case lipgloss.HasDarkBackground():
		styleOption = glamour.WithStandardStyle("dark")
	default:
		styleOption = glamour.WithStandardStyle("light")
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/renderer"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatOutput formats prompts for output
func (c *CLI) formatOutput(out io.Writer, prompts []*models.Prompt, format string) error {
	switch format {
	case "json":
		if prompts == nil {
			prompts = []*models.Prompt{}
		}
		return writeJSON(out, prompts)
	case "ids":
		for _, p := range prompts {
			fmt.Fprintln(out, p.ID)
		}
	case "table":
		w := newTable(out)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tUSES")
		for _, p := range prompts {
			title := p.Name
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			category := p.Category
			if sub := p.SubcategoryOr(""); sub != "" {
				category += " / " + sub
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, title, category, p.Uses())
		}
		return w.Flush()
	case "", "text":
		for _, p := range prompts {
			fmt.Fprintf(out, "%s - %s\n", p.ID, p.Title())
			fmt.Fprintf(out, "  %s\n", p.Description())
			fmt.Fprintln(out)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// formatSinglePrompt formats a single prompt for output
func (c *CLI) formatSinglePrompt(out io.Writer, prompt *models.Prompt, format string) error {
	r := renderer.NewRenderer(prompt)

	switch format {
	case "json":
		return writeJSON(out, prompt)
	case "markdown", "md":
		md, err := renderer.NewMarkdownRenderer(80)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		rendered, err := md.Render(r.RenderMarkdown(nil))
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprint(out, rendered)
	case "", "text":
		fmt.Fprintf(out, "ID: %s\n", prompt.ID)
		fmt.Fprintf(out, "Title: %s\n", prompt.Name)
		fmt.Fprintf(out, "Category: %s\n", prompt.Category)
		if sub := prompt.SubcategoryOr(""); sub != "" {
			fmt.Fprintf(out, "Subcategory: %s\n", sub)
		}
		if desc := prompt.DescriptionOr(""); desc != "" {
			fmt.Fprintf(out, "Description: %s\n", desc)
		}
		if markers := r.Markers(); len(markers) > 0 {
			fmt.Fprintf(out, "Placeholders: %s\n", joinQuoted(markers))
		}
		fmt.Fprintf(out, "Uses: %d\n", prompt.Uses())
		fmt.Fprintf(out, "\nTemplate:\n%s\n", prompt.Template)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

func joinQuoted(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += "[" + n + "]"
	}
	return out
}

package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dpshade/prompt-catalog/internal/catalog"
	"github.com/dpshade/prompt-catalog/internal/clipboard"
	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/renderer"
	"github.com/dpshade/prompt-catalog/internal/session"
	"github.com/dpshade/prompt-catalog/internal/tools"
)

func (c *CLI) newListCmd() *cobra.Command {
	var filter catalog.Filter
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts, most used first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.formatOutput(cmd.OutOrStdout(), c.app.Catalog.List(filter), format)
		},
	}
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "only prompts in this category")
	cmd.Flags().StringVarP(&filter.Subcategory, "subcategory", "s", "", "only prompts in this subcategory")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, table, json, ids")
	return cmd
}

func (c *CLI) newSearchCmd() *cobra.Command {
	var filter catalog.Filter
	var format string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search titles, templates and descriptions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Query = strings.Join(args, " ")
			return c.formatOutput(cmd.OutOrStdout(), c.app.Catalog.List(filter), format)
		},
	}
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "only prompts in this category")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, table, json, ids")
	return cmd
}

func (c *CLI) newSuggestCmd() *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Quick title and description matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := c.app.Catalog.Suggest(strings.Join(args, " "), limit)
			return c.formatOutput(cmd.OutOrStdout(), prompts, format)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", catalog.DefaultSuggestLimit, "maximum number of suggestions")
	cmd.Flags().StringVarP(&format, "format", "f", "ids", "output format: text, table, json, ids")
	return cmd
}

func (c *CLI) newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show a prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := c.app.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			return c.formatSinglePrompt(cmd.OutOrStdout(), prompt, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, markdown")
	return cmd
}

func (c *CLI) newMarkersCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "markers <id>",
		Short: "List the placeholders a prompt needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := c.app.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			markers := renderer.NewRenderer(prompt).Markers()
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), markers)
			}
			for _, m := range markers {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json")
	return cmd
}

func (c *CLI) newRenderCmd() *cobra.Command {
	var vars []string
	var format string
	var partial bool

	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render a prompt with placeholder values",
		Example: `  prompt-catalog render professional-email-writer --var "topic=a raise"
  prompt-catalog render personalized-workout-plan --var goal=strength --partial`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := c.app.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			s, err := fillSession(prompt, vars)
			if err != nil {
				return err
			}
			if !partial {
				if _, err := s.Confirm(); err != nil {
					return err
				}
			}

			out, err := renderer.NewRenderer(prompt).Render(format, s.Fills())
			if err != nil {
				return errors.InvalidCommandError("render", err.Error())
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", renderer.FormatText, "output format: text, json")
	cmd.Flags().BoolVar(&partial, "partial", false, "allow unfilled placeholders")
	return cmd
}

func (c *CLI) newCopyCmd() *cobra.Command {
	var vars []string
	var format string

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Fill a prompt and copy it to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := c.app.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			s, err := fillSession(prompt, vars)
			if err != nil {
				return err
			}
			if _, err := s.Confirm(); err != nil {
				return err
			}

			content, err := renderer.NewRenderer(prompt).Render(format, s.Fills())
			if err != nil {
				return errors.InvalidCommandError("copy", err.Error())
			}

			statusMsg, err := clipboard.CopyWithFallback(c.app.Clipboard, content)
			if err != nil {
				// Print the text so it is not lost
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			c.recordUse(prompt.ID)
			fmt.Fprintln(cmd.OutOrStdout(), statusMsg)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", renderer.FormatText, "output format: text, json")
	return cmd
}

func (c *CLI) newOpenCmd() *cobra.Command {
	var vars []string
	var toolID string
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Fill a prompt and open it in an AI chat tool",
		Example: `  prompt-catalog open content-virality-strategy --tool claude --var "content piece=my launch post"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toolID == "" {
				toolID = c.app.Config.DefaultTool
			}
			tool, err := c.app.Tools.Get(toolID)
			if err != nil {
				return err
			}

			prompt, err := c.app.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			s, err := fillSession(prompt, vars)
			if err != nil {
				return err
			}
			text, err := s.Confirm()
			if err != nil {
				return err
			}

			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), tool.BuildURL(text))
				return nil
			}

			link, err := tools.Launch(c.app.Opener, tool, text)
			if err != nil {
				return err
			}
			c.recordUse(prompt.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s: %s\n", tool.Name, link)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().StringVarP(&toolID, "tool", "t", "", "tool id (default from config)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the URL instead of opening it")
	return cmd
}

func (c *CLI) newCategoriesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with prompt counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type entry struct {
				Name          string   `json:"name"`
				Prompts       int      `json:"prompts"`
				Subcategories []string `json:"subcategories,omitempty"`
			}

			var entries []entry
			for _, name := range c.app.Catalog.Categories() {
				if name == models.CategoryAll {
					continue
				}
				entries = append(entries, entry{
					Name:          name,
					Prompts:       len(c.app.Catalog.List(catalog.Filter{Category: name})),
					Subcategories: c.app.Catalog.Subcategories(name),
				})
			}

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "CATEGORY\tPROMPTS\tSUBCATEGORIES")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Prompts, strings.Join(e.Subcategories, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json")
	return cmd
}

func (c *CLI) newToolsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the AI tools prompts can be opened in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := c.app.Tools.List()
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tURL\tPARAM")
			for _, t := range list {
				id := t.ID
				if t.ID == c.app.Config.DefaultTool {
					id += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, t.Name, t.BaseURL, t.Param())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json")
	return cmd
}

// fillSession opens a session for prompt and applies name=value pairs.
func fillSession(prompt *models.Prompt, vars []string) (*session.Session, error) {
	s := session.Start(prompt)
	known := make(map[string]bool)
	for _, m := range s.Markers() {
		known[m] = true
	}

	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.InvalidCommandError("--var", fmt.Sprintf("expected name=value, got %q", v))
		}
		if !known[name] {
			log.Warn().Str("prompt", prompt.ID).Str("marker", name).Msg("value for unknown placeholder")
		}
		if _, err := s.Set(name, value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *CLI) recordUse(id string) {
	if err := c.app.Catalog.RecordUse(id); err != nil {
		log.Warn().Err(err).Str("prompt", id).Msg("failed to record use")
	}
}

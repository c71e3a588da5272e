package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpshade/prompt-catalog/internal/errors"
)

// TUIRunner starts the interactive interface.
type TUIRunner func(app *App) error

// CLI provides headless command-line interface functionality
type CLI struct {
	app     *App
	load    Loader
	tui     TUIRunner
	opts    Options
	version string
}

// NewRootCommand builds the prompt-catalog command tree. With no
// subcommand the TUI is started.
func NewRootCommand(version string, load Loader, tui TUIRunner) *cobra.Command {
	c := &CLI{load: load, tui: tui, version: version}

	root := &cobra.Command{
		Use:   "prompt-catalog",
		Short: "Browse, customize and share AI prompts from the terminal",
		Long: `prompt-catalog is a catalog of reusable AI prompts.

Prompts contain [placeholders]. Fill them in, then copy the result or open
it directly in ChatGPT, Claude or Perplexity.

STORAGE:
    Default directory: ~/.prompt-catalog
    Override with: PROMPT_CATALOG_DIR=<path> or --dir`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.tui(c.app)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipLoad"] == "true" || c.app != nil {
				return nil
			}
			opts := c.opts
			opts.Interactive = !cmd.HasParent() || cmd.Name() == "tui"
			app, err := c.load(opts)
			if err != nil {
				return err
			}
			c.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&c.opts.LibraryDir, "dir", "", "library directory (default ~/.prompt-catalog)")
	root.PersistentFlags().StringVar(&c.opts.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolP("verbose", "v", false, "log handled errors")

	root.AddCommand(
		c.newListCmd(),
		c.newSearchCmd(),
		c.newSuggestCmd(),
		c.newShowCmd(),
		c.newMarkersCmd(),
		c.newRenderCmd(),
		c.newCopyCmd(),
		c.newOpenCmd(),
		c.newCategoriesCmd(),
		c.newToolsCmd(),
		c.newTUICmd(),
		c.newVersionCmd(),
	)

	return root
}

// Execute runs root and formats a returned error for the terminal.
func Execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err == nil {
		return nil
	}
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	if !errors.IsAppError(err) && cmd != nil && isUsageError(err) {
		err = errors.InvalidCommandError(cmd.Name(), err.Error())
	}
	return errors.NewCLIErrorHandler(verbose).HandleError(err)
}

func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.Contains(msg, "flag") ||
		strings.Contains(msg, "arg(s)")
}

func (c *CLI) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.tui(c.app)
		},
	}
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipLoad": "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prompt-catalog version %s\n", c.version)
		},
	}
}

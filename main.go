package main

import (
	"fmt"
	"os"

	"github.com/dpshade/prompt-catalog/internal/cli"
	"github.com/dpshade/prompt-catalog/internal/ui"
)

var version = "0.1.0"

func runTUI(app *cli.App) error {
	return ui.Run(ui.Deps{
		Catalog:     app.Catalog,
		Tools:       app.Tools,
		Clipboard:   app.Clipboard,
		Opener:      app.Opener,
		DefaultTool: app.Config.DefaultTool,
	})
}

func main() {
	root := cli.NewRootCommand(version, cli.Bootstrap, runTUI)
	if err := cli.Execute(root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

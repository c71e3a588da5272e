package cli

import (
	"io"

	"github.com/rs/zerolog/log"

	"github.com/dpshade/prompt-catalog/internal/catalog"
	"github.com/dpshade/prompt-catalog/internal/clipboard"
	"github.com/dpshade/prompt-catalog/internal/config"
	"github.com/dpshade/prompt-catalog/internal/logging"
	"github.com/dpshade/prompt-catalog/internal/storage"
	"github.com/dpshade/prompt-catalog/internal/tools"
)

// App is everything a command needs.
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Tools     *tools.Registry
	Clipboard clipboard.Writer
	Opener    tools.Opener

	closers []io.Closer
}

// Close releases resources opened by Bootstrap.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Options are the root command flags that shape bootstrap.
type Options struct {
	LibraryDir  string
	LogLevel    string
	Interactive bool
}

// Loader builds an App for a command invocation.
type Loader func(opts Options) (*App, error)

// Bootstrap loads configuration, sets up logging, reads the catalog and
// builds the tool registry.
func Bootstrap(opts Options) (*App, error) {
	cfg, err := config.Load(opts.LibraryDir)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	app := &App{
		Config:    cfg,
		Clipboard: clipboard.System{},
		Opener:    tools.BrowserOpener{},
	}

	if opts.Interactive {
		closer, err := logging.SetupFile(cfg.LogLevel, cfg.LogFile())
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, closer)
		tools.Quiet()
	} else if err := logging.SetupConsole(cfg.LogLevel); err != nil {
		return nil, err
	}

	file, err := storage.Load(storage.Options{
		CatalogFile: cfg.CatalogFile,
		PromptsDir:  cfg.PromptsDir,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalog.New(file.Prompts, file.Categories)

	app.Tools, err = tools.NewRegistry(cfg.Tools)
	if err != nil {
		app.Close()
		return nil, err
	}
	if _, err := app.Tools.Get(cfg.DefaultTool); err != nil {
		log.Warn().Str("tool", cfg.DefaultTool).Msg("default tool not configured, using chatgpt")
		cfg.DefaultTool = tools.DefaultTool
	}

	log.Debug().
		Str("library", cfg.LibraryDir).
		Int("prompts", app.Catalog.Len()).
		Bool("interactive", opts.Interactive).
		Msg("bootstrapped")

	return app, nil
}

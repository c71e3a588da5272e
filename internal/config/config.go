package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dpshade/prompt-catalog/internal/tools"
	"github.com/dpshade/prompt-catalog/internal/validation"
)

// EnvPrefix prefixes every environment override, e.g. PROMPT_CATALOG_LOG_LEVEL.
const EnvPrefix = "PROMPT_CATALOG"

// DirEnv overrides the library directory.
const DirEnv = EnvPrefix + "_DIR"

type Config struct {
	LibraryDir  string                `validate:"required"`
	CatalogFile string                `validate:"required"`
	PromptsDir  string                `validate:"required"`
	DefaultTool string                `validate:"notblank"`
	LogLevel    string                `validate:"oneof=trace debug info warn error disabled"`
	Tools       map[string]tools.Tool `validate:"-"`
}

// LogFile is where the TUI writes its log.
func (c *Config) LogFile() string {
	return filepath.Join(c.LibraryDir, "logs", "prompt-catalog.log")
}

// DefaultLibraryDir returns ~/.prompt-catalog.
func DefaultLibraryDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".prompt-catalog"), nil
}

// Load reads config from the environment (PROMPT_CATALOG_ prefix) and an
// optional config.yaml in the library directory. libraryDir, when set,
// takes precedence over PROMPT_CATALOG_DIR.
func Load(libraryDir string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("library_dir", DirEnv)

	if libraryDir == "" {
		libraryDir = v.GetString("library_dir")
	}
	if libraryDir == "" {
		dir, err := DefaultLibraryDir()
		if err != nil {
			return nil, err
		}
		libraryDir = dir
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(libraryDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetDefault("catalog_file", "catalog.yaml")
	v.SetDefault("prompts_dir", "prompts")
	v.SetDefault("default_tool", tools.DefaultTool)
	v.SetDefault("log_level", "info")

	cfg := &Config{
		LibraryDir:  libraryDir,
		CatalogFile: resolve(libraryDir, v.GetString("catalog_file")),
		PromptsDir:  resolve(libraryDir, v.GetString("prompts_dir")),
		DefaultTool: strings.ToLower(v.GetString("default_tool")),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
	}

	if err := v.UnmarshalKey("tools", &cfg.Tools); err != nil {
		return nil, fmt.Errorf("invalid tools configuration: %w", err)
	}

	if appErr := validation.Struct(cfg).ToAppError(); appErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", appErr)
	}

	return cfg, nil
}

func resolve(base, path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

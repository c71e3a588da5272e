package storage

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
)

//go:embed data/catalog.yaml
var defaultData embed.FS

const defaultCatalogPath = "data/catalog.yaml"

// CatalogFile is the on-disk shape of a catalog.
type CatalogFile struct {
	Categories []string         `yaml:"categories"`
	Prompts    []*models.Prompt `yaml:"prompts"`
}

// Options selects the sources merged by Load. Empty paths are skipped.
type Options struct {
	// SkipDefaults leaves out the embedded catalog.
	SkipDefaults bool
	// CatalogFile is an additional YAML catalog.
	CatalogFile string
	// PromptsDir holds one markdown file per prompt with YAML frontmatter.
	PromptsDir string
}

// Load reads the embedded catalog, then the optional catalog file, then the
// optional prompts directory. A prompt whose ID was already seen replaces
// the earlier one in place.
func Load(opts Options) (*CatalogFile, error) {
	merged := &CatalogFile{}
	index := make(map[string]int)

	add := func(src *CatalogFile, origin string) {
		merged.Categories = append(merged.Categories, src.Categories...)
		for _, p := range src.Prompts {
			if p == nil || p.ID == "" {
				log.Warn().Str("source", origin).Msg("skipping prompt without id")
				continue
			}
			if i, ok := index[p.ID]; ok {
				merged.Prompts[i] = p
				continue
			}
			index[p.ID] = len(merged.Prompts)
			merged.Prompts = append(merged.Prompts, p)
		}
	}

	if !opts.SkipDefaults {
		data, err := defaultData.ReadFile(defaultCatalogPath)
		if err != nil {
			return nil, errors.StorageError("read embedded catalog", err)
		}
		def, err := ParseCatalog(data)
		if err != nil {
			return nil, errors.StorageError("parse embedded catalog", err)
		}
		add(def, "embedded")
	}

	if opts.CatalogFile != "" {
		data, err := os.ReadFile(opts.CatalogFile)
		switch {
		case os.IsNotExist(err):
			log.Debug().Str("path", opts.CatalogFile).Msg("catalog file not found, skipping")
		case err != nil:
			return nil, errors.StorageError("read catalog file", err).WithContext("path", opts.CatalogFile)
		default:
			file, err := ParseCatalog(data)
			if err != nil {
				return nil, errors.StorageError("parse catalog file", err).WithContext("path", opts.CatalogFile)
			}
			add(file, opts.CatalogFile)
		}
	}

	if opts.PromptsDir != "" {
		prompts, err := LoadPromptsDir(opts.PromptsDir)
		if err != nil {
			return nil, err
		}
		add(&CatalogFile{Prompts: prompts}, opts.PromptsDir)
	}

	log.Debug().
		Int("prompts", len(merged.Prompts)).
		Int("categories", len(merged.Categories)).
		Msg("catalog loaded")

	return merged, nil
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &file, nil
}

// LoadPromptsDir loads every *.md file under dir. Files that fail to parse
// are logged and skipped. A missing directory yields no prompts.
func LoadPromptsDir(dir string) ([]*models.Prompt, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var prompts []*models.Prompt
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to read prompt file")
			return nil
		}
		prompt, err := parsePromptFile(content)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to load prompt")
			return nil
		}

		relPath, _ := filepath.Rel(dir, path)
		prompt.FilePath = relPath
		if prompt.ID == "" {
			prompt.ID = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		prompts = append(prompts, prompt)
		return nil
	})
	if err != nil {
		return nil, errors.StorageError("walk prompts directory", err).WithContext("path", dir)
	}
	return prompts, nil
}

// parsePromptFile reads "---" delimited YAML frontmatter followed by the
// template body.
func parsePromptFile(content []byte) (*models.Prompt, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}
	if !closed {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	var prompt models.Prompt
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &prompt); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	var body []string
	for scanner.Scan() {
		body = append(body, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt body: %w", err)
	}

	if text := strings.TrimSpace(strings.Join(body, "\n")); text != "" {
		prompt.Template = text
	}
	if prompt.Template == "" {
		return nil, fmt.Errorf("prompt has no template text")
	}

	return &prompt, nil
}

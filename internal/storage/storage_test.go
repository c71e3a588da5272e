package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_EmbeddedCatalog(t *testing.T) {
	file, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Career", "Gym Plan", "Growth Hack", "Productivity", "Scary"}, file.Categories)
	require.NotEmpty(t, file.Prompts)

	seen := make(map[string]bool)
	for _, p := range file.Prompts {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name, p.ID)
		assert.NotEmpty(t, p.Template, p.ID)
		assert.NotEmpty(t, p.Category, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	assert.True(t, seen["professional-email-writer"])
}

func TestLoad_CatalogFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	writeFile(t, path, `
categories:
  - Writing
prompts:
  - id: professional-email-writer
    title: Short Email
    content: Write a short email to [name].
    category: Career
    usageCount: 4
  - id: haiku
    title: Haiku
    template: Write a haiku about [subject].
    category: Writing
    isFeatured: true
`)

	file, err := Load(Options{CatalogFile: path})
	require.NoError(t, err)
	assert.Contains(t, file.Categories, "Writing")

	byID := make(map[string]int)
	for i, p := range file.Prompts {
		byID[p.ID] = i
	}

	email := file.Prompts[byID["professional-email-writer"]]
	assert.Equal(t, 0, byID["professional-email-writer"], "override keeps position")
	assert.Equal(t, "Short Email", email.Name)
	assert.Equal(t, "Write a short email to [name].", email.Template)
	assert.Equal(t, 4, email.Uses())

	haiku := file.Prompts[byID["haiku"]]
	assert.True(t, haiku.IsFeatured())
}

func TestLoad_MissingCatalogFileIsSkipped(t *testing.T) {
	file, err := Load(Options{
		SkipDefaults: true,
		CatalogFile:  filepath.Join(t.TempDir(), "nope.yaml"),
		PromptsDir:   filepath.Join(t.TempDir(), "nope"),
	})
	require.NoError(t, err)
	assert.Empty(t, file.Prompts)
}

func TestLoad_InvalidCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeFile(t, path, "prompts: [this is: not: valid")

	_, err := Load(Options{SkipDefaults: true, CatalogFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog file")
}

func TestLoadPromptsDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "standup.md"), `---
title: Standup Update
category: Productivity
subcategory: Meetings
---
Yesterday I worked on [yesterday].
Today I will work on [today].
`)
	writeFile(t, filepath.Join(dir, "nested", "explicit.md"), `---
id: explicit-id
title: Explicit
category: Career
template: Used when the body is empty [x]
---
`)
	writeFile(t, filepath.Join(dir, "broken.md"), "no frontmatter here")
	writeFile(t, filepath.Join(dir, "empty.md"), "---\ntitle: Empty\ncategory: Career\n---\n\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	prompts, err := LoadPromptsDir(dir)
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	byID := make(map[string]string)
	for _, p := range prompts {
		byID[p.ID] = p.Template
	}

	assert.Equal(t, "Yesterday I worked on [yesterday].\nToday I will work on [today].", byID["standup"])
	assert.Equal(t, "Used when the body is empty [x]", byID["explicit-id"])
}

func TestLoad_PromptsDirMerged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "weekly-priorities.md"), `---
title: My Priorities
category: Productivity
---
Rank [tasks] by urgency.
`)

	file, err := Load(Options{PromptsDir: dir})
	require.NoError(t, err)

	var found bool
	for _, p := range file.Prompts {
		if p.ID == "weekly-priorities" {
			found = true
			assert.Equal(t, "My Priorities", p.Name)
			assert.Equal(t, "weekly-priorities.md", p.FilePath)
		}
	}
	assert.True(t, found)
}

func TestParsePromptFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no delimiter", "title: x"},
		{"unterminated", "---\ntitle: x\n"},
		{"bad yaml", "---\ntitle: [\n---\nbody"},
		{"no template", "---\ntitle: x\n---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePromptFile([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/prompt-catalog/internal/catalog"
	"github.com/dpshade/prompt-catalog/internal/config"
	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/storage"
	"github.com/dpshade/prompt-catalog/internal/tools"
)

const emailRendered = "Write a professional email about a raise that is concise, clear, and maintains a friendly yet formal tone."

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type fakeOpener struct{ urls []string }

func (f *fakeOpener) Open(u string) error {
	f.urls = append(f.urls, u)
	return nil
}

type harness struct {
	app       *App
	clip      *fakeClipboard
	opener    *fakeOpener
	loads     int
	tuiCalled bool
	lastOpts  Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	file, err := storage.Load(storage.Options{})
	require.NoError(t, err)
	registry, err := tools.NewRegistry(nil)
	require.NoError(t, err)

	h := &harness{clip: &fakeClipboard{}, opener: &fakeOpener{}}
	h.app = &App{
		Config:    &config.Config{DefaultTool: "chatgpt"},
		Catalog:   catalog.New(file.Prompts, file.Categories),
		Tools:     registry,
		Clipboard: h.clip,
		Opener:    h.opener,
	}
	return h
}

func (h *harness) run(args ...string) (string, error) {
	root := NewRootCommand("test",
		func(opts Options) (*App, error) {
			h.loads++
			h.lastOpts = opts
			return h.app, nil
		},
		func(app *App) error {
			h.tuiCalled = true
			return nil
		},
	)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("list", "--category", "Career", "--format", "ids")
	require.NoError(t, err)
	assert.Equal(t, "professional-email-writer\nresume-bullet-polisher\nsalary-negotiation\n", out)

	out, err = h.run("list", "-c", "Career", "-s", "Resume", "-f", "json")
	require.NoError(t, err)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "resume-bullet-polisher", listed[0]["id"])

	out, err = h.run("list", "-c", "Gym Plan", "-f", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Gym Plan / Nutrition")

	_, err = h.run("list", "-f", "yaml")
	assert.Error(t, err)
}

func TestSearchAndSuggest(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("search", "workout", "plan", "-f", "ids")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "personalized-workout-plan\n"), out)

	out, err = h.run("suggest", "email")
	require.NoError(t, err)
	assert.Equal(t, "professional-email-writer\n", out)

	_, err = h.run("search")
	assert.Error(t, err)
}

func TestShowAndMarkers(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("show", "personalized-workout-plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Personalized Workout Plan")
	assert.Contains(t, out, "Placeholders: [goal], [level], [equipment]")

	out, err = h.run("markers", "personalized-workout-plan")
	require.NoError(t, err)
	assert.Equal(t, "goal\nlevel\nequipment\n", out)

	_, err = h.run("show", "nope")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestRender(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("render", "professional-email-writer", "--var", "topic=a raise")
	require.NoError(t, err)
	assert.Equal(t, emailRendered+"\n", out)

	_, err = h.run("render", "professional-email-writer")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncompleteTemplate))

	out, err = h.run("render", "professional-email-writer", "--partial")
	require.NoError(t, err)
	assert.Contains(t, out, "about [topic] that")

	out, err = h.run("render", "professional-email-writer", "--var", "topic=a raise", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"role": "user"`)

	_, err = h.run("render", "professional-email-writer", "--var", "topic")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidCommand))
}

func TestRender_ValueContainingEquals(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("render", "professional-email-writer", "--var", "topic=x=y [z]")
	require.NoError(t, err)
	assert.Contains(t, out, "about x=y [z] that")
}

func TestCopy(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("copy", "professional-email-writer", "--var", "topic=a raise")
	require.NoError(t, err)
	assert.Equal(t, "Copied to clipboard!\n", out)
	assert.Equal(t, emailRendered, h.clip.text)

	p, err := h.app.Catalog.Get("professional-email-writer")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Uses())

	h.clip.text = ""
	_, err = h.run("copy", "professional-email-writer")
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncompleteTemplate))
	assert.Empty(t, h.clip.text)
}

func TestOpen(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("open", "professional-email-writer", "--tool", "claude", "--var", "topic=a raise")
	require.NoError(t, err)
	assert.Contains(t, out, "Opened Claude")
	require.Len(t, h.opener.urls, 1)
	assert.True(t, strings.HasPrefix(h.opener.urls[0], "https://claude.ai?q=Write%20a%20professional%20email%20about%20a%20raise"))

	out, err = h.run("open", "weekly-priorities", "--var", "tasks=taxes", "--print")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "https://chat.openai.com?prompt=Given%20these%20tasks"), out)
	assert.Len(t, h.opener.urls, 1)

	_, err = h.run("open", "weekly-priorities", "--tool", "bard", "--var", "tasks=x")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = h.run("open", "weekly-priorities")
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncompleteTemplate))
	assert.Len(t, h.opener.urls, 1)
}

func TestCategoriesAndTools(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Career")
	assert.NotContains(t, out, "All ")

	out, err = h.run("tools")
	require.NoError(t, err)
	assert.Contains(t, out, "chatgpt *")
	assert.Contains(t, out, "https://perplexity.ai/search")
}

func TestRootStartsTUI(t *testing.T) {
	h := newHarness(t)

	_, err := h.run()
	require.NoError(t, err)
	assert.True(t, h.tuiCalled)
	assert.True(t, h.lastOpts.Interactive)

	h.tuiCalled = false
	_, err = h.run("list", "--dir", "/tmp/lib")
	require.NoError(t, err)
	assert.False(t, h.tuiCalled)
	assert.False(t, h.lastOpts.Interactive)
	assert.Equal(t, "/tmp/lib", h.lastOpts.LibraryDir)
}

func TestVersionSkipsLoading(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("version")
	require.NoError(t, err)
	assert.Equal(t, "prompt-catalog version test\n", out)
	assert.Zero(t, h.loads)
}

func TestExecute_FormatsErrors(t *testing.T) {
	h := newHarness(t)
	root := NewRootCommand("test", func(Options) (*App, error) { return h.app, nil }, func(*App) error { return nil })
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	root.SetArgs([]string{"frobnicate"})
	err := Execute(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERROR: Invalid command")

	root.SetArgs([]string{"show", "missing"})
	err = Execute(root)
	require.Error(t, err)
	assert.Equal(t, `INFO: prompt "missing" not found`, err.Error())
}

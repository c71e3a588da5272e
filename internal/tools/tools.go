// Package tools knows the AI chat tools a finished prompt can be sent to and
// how to build the pre-filled link for each one.
package tools

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/validation"
)

// DefaultQueryParam is used for tools that do not name their own parameter.
const DefaultQueryParam = "q"

// DefaultTool is selected when configuration names none.
const DefaultTool = "chatgpt"

// Tool is one AI chat destination.
type Tool struct {
	ID         string `mapstructure:"id" json:"id"`
	Name       string `mapstructure:"name" json:"name"`
	BaseURL    string `mapstructure:"base_url" json:"base_url"`
	QueryParam string `mapstructure:"query_param" json:"query_param,omitempty"`
}

// Param returns the query parameter carrying the prompt text.
func (t Tool) Param() string {
	if t.QueryParam == "" {
		return DefaultQueryParam
	}
	return t.QueryParam
}

// BuildURL returns the tool link with text as the query value. Spaces are
// encoded as %20.
func (t Tool) BuildURL(text string) string {
	sep := "?"
	if strings.Contains(t.BaseURL, "?") {
		sep = "&"
	}
	return t.BaseURL + sep + t.Param() + "=" + EncodeComponent(text)
}

// EncodeComponent percent-encodes s for use as a single query value.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DefaultTools returns the built-in tool table.
func DefaultTools() []Tool {
	return []Tool{
		{ID: "chatgpt", Name: "ChatGPT", BaseURL: "https://chat.openai.com", QueryParam: "prompt"},
		{ID: "claude", Name: "Claude", BaseURL: "https://claude.ai", QueryParam: "q"},
		{ID: "perplexity", Name: "Perplexity", BaseURL: "https://perplexity.ai/search", QueryParam: "q"},
	}
}

// Registry is an ordered set of tools.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry starts from DefaultTools and applies overrides keyed by tool
// ID. An override for an unknown ID adds a tool; empty fields of an
// override keep the default value.
func NewRegistry(overrides map[string]Tool) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}
	for _, t := range DefaultTools() {
		r.put(t)
	}

	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		o := overrides[id]
		o.ID = strings.ToLower(strings.TrimSpace(id))
		if i, ok := r.index[o.ID]; ok {
			base := r.tools[i]
			if o.Name == "" {
				o.Name = base.Name
			}
			if o.BaseURL == "" {
				o.BaseURL = base.BaseURL
			}
			if o.QueryParam == "" {
				o.QueryParam = base.QueryParam
			}
		} else if o.Name == "" {
			o.Name = o.ID
		}

		result := validation.ValidateTool(validation.ToolInput{
			ID:         o.ID,
			Name:       o.Name,
			BaseURL:    o.BaseURL,
			QueryParam: o.QueryParam,
		})
		if appErr := result.ToAppError(); appErr != nil {
			return nil, appErr.WithContext("tool", o.ID)
		}
		r.put(o)
		log.Debug().Str("tool", o.ID).Str("base_url", o.BaseURL).Msg("tool configured")
	}
	return r, nil
}

func (r *Registry) put(t Tool) {
	if i, ok := r.index[t.ID]; ok {
		r.tools[i] = t
		return
	}
	r.index[t.ID] = len(r.tools)
	r.tools = append(r.tools, t)
}

// List returns the tools in registry order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Get looks a tool up by ID, ignoring case.
func (r *Registry) Get(id string) (Tool, error) {
	if i, ok := r.index[strings.ToLower(strings.TrimSpace(id))]; ok {
		return r.tools[i], nil
	}
	return Tool{}, errors.NotFoundError(fmt.Sprintf("tool %q", id))
}

// Next returns the tool after id, wrapping around. An unknown id yields the
// first tool.
func (r *Registry) Next(id string) Tool {
	i, ok := r.index[strings.ToLower(id)]
	if !ok {
		return r.tools[0]
	}
	return r.tools[(i+1)%len(r.tools)]
}

// Opener opens a URL outside the process.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the user's default browser.
type BrowserOpener struct{}

// Open implements Opener.
func (BrowserOpener) Open(u string) error {
	return browser.OpenURL(u)
}

// Quiet silences the output of the launched browser process, which would
// otherwise be written over the TUI.
func Quiet() {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Launch opens tool pre-filled with text and returns the URL it opened.
func Launch(opener Opener, tool Tool, text string) (string, error) {
	link := tool.BuildURL(text)
	if err := opener.Open(link); err != nil {
		return link, errors.BrowserFailureError(tool.Name, err).WithContext("url", link)
	}
	log.Info().Str("tool", tool.ID).Int("length", len(text)).Msg("opened tool")
	return link, nil
}

package renderer

import (
	"encoding/json"
	"fmt"

	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/placeholder"
)

// Format names accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer handles prompt rendering
type Renderer struct {
	prompt   *models.Prompt
	template placeholder.Template
}

// NewRenderer creates a new renderer instance
func NewRenderer(prompt *models.Prompt) *Renderer {
	return &Renderer{
		prompt:   prompt,
		template: placeholder.NewTemplate(prompt.Template),
	}
}

// Markers returns the markers a caller has to fill.
func (r *Renderer) Markers() []string {
	return r.template.Markers()
}

// RenderText renders the prompt as plain text. Unfilled markers stay literal.
func (r *Renderer) RenderText(fills placeholder.FillMap) string {
	return r.template.Render(fills)
}

// RenderJSON renders the prompt as a JSON message array for LLM APIs
func (r *Renderer) RenderJSON(fills placeholder.FillMap) (string, error) {
	messages := []Message{
		{
			Role:    "user",
			Content: r.RenderText(fills),
		},
	}

	jsonBytes, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// Render dispatches on format name.
func (r *Renderer) Render(format string, fills placeholder.FillMap) (string, error) {
	switch format {
	case "", FormatText:
		return r.RenderText(fills), nil
	case FormatJSON:
		return r.RenderJSON(fills)
	default:
		return "", fmt.Errorf("unsupported format %q (use %s or %s)", format, FormatText, FormatJSON)
	}
}

// Message represents a chat message for LLM APIs
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

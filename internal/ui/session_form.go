package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/renderer"
	"github.com/dpshade/prompt-catalog/internal/session"
	"github.com/dpshade/prompt-catalog/internal/tools"
)

// SessionForm is the customization view of one prompt: an input per marker,
// the tool picker and a live preview of the rendered text.
type SessionForm struct {
	session  *session.Session
	renderer *renderer.Renderer
	inputs   []textinput.Model
	focused  int // len(inputs) is the tool row

	registry *tools.Registry
	tool     tools.Tool

	preview  viewport.Model
	markdown *glamour.TermRenderer
}

// NewSessionForm starts a session for p. toolID selects the initial tool;
// an unknown id falls back to the first registered tool.
func NewSessionForm(p *models.Prompt, registry *tools.Registry, toolID string, md *glamour.TermRenderer) *SessionForm {
	s := session.Start(p)

	tool, err := registry.Get(toolID)
	if err != nil {
		tool = registry.List()[0]
	}

	markers := s.Markers()
	inputs := make([]textinput.Model, len(markers))
	for i, name := range markers {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = name
		inputs[i].CharLimit = 500
		inputs[i].Width = 50
	}

	vp := viewport.New(60, 10)
	vp.Style = lipgloss.NewStyle()

	f := &SessionForm{
		session:  s,
		renderer: renderer.NewRenderer(p),
		inputs:   inputs,
		registry: registry,
		tool:     tool,
		preview:  vp,
		markdown: md,
	}
	f.setFocus(0)
	f.refreshPreview()
	return f
}

// Session returns the underlying session.
func (f *SessionForm) Session() *session.Session { return f.session }

// Tool returns the selected tool.
func (f *SessionForm) Tool() tools.Tool { return f.tool }

// OnToolRow reports whether the tool picker has focus.
func (f *SessionForm) OnToolRow() bool { return f.focused == len(f.inputs) }

// CycleTool selects the next registered tool.
func (f *SessionForm) CycleTool() {
	f.tool = f.registry.Next(f.tool.ID)
}

// Update handles form updates
func (f *SessionForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			if f.OnToolRow() {
				f.CycleTool()
			} else {
				f.setFocus(f.focused + 1)
			}
			return nil
		case "right":
			if f.OnToolRow() {
				f.CycleTool()
				return nil
			}
		case "shift+tab", "up":
			f.setFocus(f.focused - 1)
			return nil
		case "down", "enter":
			if !f.OnToolRow() {
				f.setFocus(f.focused + 1)
				return nil
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			f.preview, cmd = f.preview.Update(msg)
			return cmd
		}
	}

	if f.OnToolRow() {
		return nil
	}

	before := f.inputs[f.focused].Value()
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	if value := f.inputs[f.focused].Value(); value != before {
		name := f.session.Markers()[f.focused]
		if _, err := f.session.Set(name, value); err != nil {
			log.Warn().Err(err).Str("marker", name).Msg("ignored edit")
		}
		f.refreshPreview()
	}
	return cmd
}

func (f *SessionForm) setFocus(field int) {
	if !f.OnToolRow() {
		f.inputs[f.focused].Blur()
	}
	if field < 0 {
		field = 0
	}
	if field > len(f.inputs) {
		field = len(f.inputs)
	}
	f.focused = field
	if !f.OnToolRow() {
		f.inputs[f.focused].Focus()
	}
}

// Resize fits the inputs and preview to the window and rebuilds the markdown
// renderer for the new wrap width.
func (f *SessionForm) Resize(width, height int) {
	for i := range f.inputs {
		f.inputs[i].Width = min(60, max(width-20, 10))
	}

	previewWidth := max(width-10, 30)
	f.preview.Width = previewWidth
	f.preview.Height = max(height-12-2*len(f.inputs), 5)
	if md, err := renderer.NewMarkdownRenderer(previewWidth - 4); err == nil {
		f.markdown = md
	}
	f.refreshPreview()
}

func (f *SessionForm) refreshPreview() {
	content := f.session.Rendered()
	if f.markdown != nil {
		if out, err := f.markdown.Render(f.renderer.RenderMarkdown(f.session.Fills())); err == nil {
			content = out
		}
	}
	f.preview.SetContent(content)
}

// View renders the marker inputs, tool row and preview.
func (f *SessionForm) View() string {
	var rows []string

	if len(f.inputs) == 0 {
		rows = append(rows, StyleTextMuted.Render("No placeholders. This prompt is ready to use."), "")
	}
	for i, name := range f.session.Markers() {
		label := fmt.Sprintf("[%s]", name)
		style := StyleFormLabel
		if i == f.focused {
			style = StyleFormLabelFocused
			label = "▶ " + label
		}
		rows = append(rows, style.Render(label), f.inputs[i].View())
	}

	rows = append(rows, "", CreateToolRow(f.tool.Name, f.OnToolRow()))

	top, bottom := CreateScrollIndicators(!f.preview.AtTop(), !f.preview.AtBottom())
	preview := StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left, top, f.preview.View(), bottom))
	rows = append(rows, preview)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

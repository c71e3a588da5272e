package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-catalog/internal/validation"
)

// CreateForm handles prompt creation
type CreateForm struct {
	inputs    []textinput.Model
	textarea  textarea.Model
	focused   int
	submitted bool
}

// Form field indices
const (
	titleField = iota
	categoryField
	subcategoryField
	descriptionField
	templateField
)

var createFormLabels = []string{
	titleField:       "Title",
	categoryField:    "Category",
	subcategoryField: "Subcategory (optional)",
	descriptionField: "Description (optional)",
	templateField:    "Template",
}

// NewCreateForm creates a new prompt creation form. category pre-fills the
// category field and categories feed its autocomplete.
func NewCreateForm(category string, categories []string) *CreateForm {
	inputs := make([]textinput.Model, templateField)

	inputs[titleField] = textinput.New()
	inputs[titleField].Placeholder = "Prompt Title"
	inputs[titleField].CharLimit = 100
	inputs[titleField].Width = 40
	inputs[titleField].Focus()

	// Right arrow accepts a suggestion so tab keeps moving between fields
	suggestKeys := textinput.DefaultKeyMap
	suggestKeys.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+space", "right"))

	inputs[categoryField] = textinput.New()
	inputs[categoryField].Placeholder = "Career, Productivity, ..."
	inputs[categoryField].CharLimit = 40
	inputs[categoryField].Width = 40
	inputs[categoryField].SetValue(category)
	inputs[categoryField].SetSuggestions(categories)
	inputs[categoryField].ShowSuggestions = len(categories) > 0
	inputs[categoryField].KeyMap = suggestKeys

	inputs[subcategoryField] = textinput.New()
	inputs[subcategoryField].CharLimit = 60
	inputs[subcategoryField].Width = 40

	inputs[descriptionField] = textinput.New()
	inputs[descriptionField].Placeholder = "Brief description of the prompt"
	inputs[descriptionField].CharLimit = 255
	inputs[descriptionField].Width = 60

	ta := textarea.New()
	ta.Placeholder = "Write a professional email about [topic]..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(8)

	return &CreateForm{
		inputs:   inputs,
		textarea: ta,
		focused:  titleField,
	}
}

// Update handles form updates
func (f *CreateForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			f.nextField()
			return nil
		case "shift+tab":
			f.prevField()
			return nil
		case "ctrl+s":
			f.submitted = true
			return nil
		case "down", "enter":
			// The template field takes newlines and cursor movement itself
			if f.focused != templateField {
				f.nextField()
				return nil
			}
		case "up":
			if f.focused != templateField {
				f.prevField()
				return nil
			}
		}
	}

	var cmd tea.Cmd
	if f.focused == templateField {
		f.textarea, cmd = f.textarea.Update(msg)
	} else {
		f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	}
	return cmd
}

// Resize updates form dimensions based on window size
func (f *CreateForm) Resize(width, height int) {
	availableHeight := height - 20
	if availableHeight < 5 {
		availableHeight = 5
	}
	f.textarea.SetWidth(max(width-10, 20))
	f.textarea.SetHeight(availableHeight)
}

func (f *CreateForm) setFocus(field int) {
	if f.focused == templateField {
		f.textarea.Blur()
	} else {
		f.inputs[f.focused].Blur()
	}

	f.focused = (field + templateField + 1) % (templateField + 1)

	if f.focused == templateField {
		f.textarea.Focus()
	} else {
		f.inputs[f.focused].Focus()
	}
}

// nextField moves to the next form field
func (f *CreateForm) nextField() { f.setFocus(f.focused + 1) }

// prevField moves to the previous form field
func (f *CreateForm) prevField() { f.setFocus(f.focused - 1) }

// IsInContentField returns true if the template textarea is focused
func (f *CreateForm) IsInContentField() bool {
	return f.focused == templateField
}

// ToInput collects the form values for validation.
func (f *CreateForm) ToInput() validation.PromptInput {
	return validation.PromptInput{
		Title:       f.inputs[titleField].Value(),
		Category:    f.inputs[categoryField].Value(),
		Subcategory: f.inputs[subcategoryField].Value(),
		Description: f.inputs[descriptionField].Value(),
		Template:    f.textarea.Value(),
	}
}

// IsSubmitted returns whether the form has been submitted
func (f *CreateForm) IsSubmitted() bool {
	return f.submitted
}

// Retry clears the submitted flag after a rejected submission.
func (f *CreateForm) Retry() {
	f.submitted = false
}

// View renders the form fields.
func (f *CreateForm) View() string {
	var rows []string
	for i, label := range createFormLabels {
		style := StyleFormLabel
		if i == f.focused {
			style = StyleFormLabelFocused
			label = "▶ " + label
		}
		rows = append(rows, style.Render(label))
		if i == templateField {
			rows = append(rows, f.textarea.View())
		} else {
			rows = append(rows, f.inputs[i].View(), "")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

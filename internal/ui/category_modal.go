package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-catalog/internal/validation"
)

// CategoryModal provides a modal for adding a category
type CategoryModal struct {
	nameInput  textinput.Model
	existing   []string
	isActive   bool
	submitted  bool
	width      int
	height     int
	inputError string
}

// NewCategoryModal creates a new category modal
func NewCategoryModal() *CategoryModal {
	nameInput := textinput.New()
	nameInput.Placeholder = "Category name"
	nameInput.CharLimit = 40
	nameInput.Width = 40

	return &CategoryModal{nameInput: nameInput}
}

// SetExisting sets the category names used for duplicate feedback
func (m *CategoryModal) SetExisting(names []string) {
	m.existing = names
}

// Update handles modal updates
func (m *CategoryModal) Update(msg tea.Msg) tea.Cmd {
	if !m.isActive {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.isActive = false
			return nil
		case "enter":
			if m.inputError == "" && strings.TrimSpace(m.nameInput.Value()) != "" {
				m.submitted = true
				m.isActive = false
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	m.validate()
	return cmd
}

// validate refreshes the live feedback line under the input
func (m *CategoryModal) validate() {
	name := m.nameInput.Value()
	if strings.TrimSpace(name) == "" {
		m.inputError = ""
		return
	}
	if appErr := validation.ValidateCategory(name).ToAppError(); appErr != nil {
		m.inputError = appErr.Message
		return
	}
	for _, existing := range m.existing {
		if strings.EqualFold(existing, strings.TrimSpace(name)) {
			m.inputError = "category already exists"
			return
		}
	}
	m.inputError = ""
}

// View renders the modal
func (m *CategoryModal) View() string {
	if !m.isActive {
		return ""
	}

	content := []string{
		StyleTitle.Render("Add Category"),
		"",
		StyleFormLabelFocused.Render("▶ Name:"),
		m.nameInput.View(),
	}

	if m.inputError != "" {
		content = append(content, lipgloss.NewStyle().Italic(true).Foreground(ColorError).Render("✗ "+m.inputError))
	} else if strings.TrimSpace(m.nameInput.Value()) != "" {
		content = append(content, lipgloss.NewStyle().Italic(true).Foreground(ColorTextDim).Render("✓ new category"))
	}

	content = append(content, "", StyleTextDim.Italic(true).Render("Enter: add • Esc: cancel"))

	return StyleModal.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// SetActive sets the modal active state
func (m *CategoryModal) SetActive(active bool) {
	m.isActive = active
	if active {
		m.submitted = false
		m.inputError = ""
		m.nameInput.SetValue("")
		m.nameInput.Focus()
	}
}

// IsActive returns whether the modal is active
func (m *CategoryModal) IsActive() bool {
	return m.isActive
}

// IsSubmitted returns whether the form was submitted
func (m *CategoryModal) IsSubmitted() bool {
	return m.submitted
}

// Name returns the entered category name
func (m *CategoryModal) Name() string {
	return strings.TrimSpace(m.nameInput.Value())
}

// Consume clears the submitted flag once the name has been handled
func (m *CategoryModal) Consume() {
	m.submitted = false
}

// Resize updates the modal dimensions
func (m *CategoryModal) Resize(width, height int) {
	m.width = width
	m.height = height
	m.nameInput.Width = min(40, max(width-12, 10))
}

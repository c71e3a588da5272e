package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-catalog/internal/catalog"
	"github.com/dpshade/prompt-catalog/internal/clipboard"
	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/renderer"
	"github.com/dpshade/prompt-catalog/internal/tools"
)

// Deps are the services the TUI works against.
type Deps struct {
	Catalog     *catalog.Catalog
	Tools       *tools.Registry
	Clipboard   clipboard.Writer
	Opener      tools.Opener
	DefaultTool string
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewSession
	ViewCreatePrompt
)

// Model represents the TUI application state
type Model struct {
	deps     Deps
	viewMode ViewMode

	// UI components
	promptList list.Model
	help       help.Model
	keys       KeyMap

	// Category tabs and the most used row of the active tab
	categories []string
	category   int
	mostUsed   []*models.Prompt

	// Search dropdown shown while the list filter is being typed
	dropdownOpen  bool
	suggestions   []*models.Prompt
	suggestCursor int

	sessionForm   *SessionForm
	createForm    *CreateForm
	categoryModal *CategoryModal

	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int

	showHelpModal    bool
	showExpandedHelp bool

	errHandler *errors.TUIErrorHandler
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Back        key.Binding
	Quit        key.Binding
	Help        key.Binding
	ExpandHelp  key.Binding
	Search      key.Binding
	MostUsed    key.Binding
	Copy        key.Binding
	Open        key.Binding
	CycleTool   key.Binding
	New         key.Binding
	AddCategory key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Search, k.MostUsed, k.Back},
		{k.Copy, k.Open, k.CycleTool},
		{k.New, k.AddCategory, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous category"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next category"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "use prompt"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	ExpandHelp: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("Ctrl+g", "expand help"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	MostUsed: key.NewBinding(
		key.WithKeys("1", "2", "3"),
		key.WithHelp("1-3", "most used"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("Ctrl+y", "copy"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("Ctrl+o", "open in tool"),
	),
	CycleTool: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field / tool"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new prompt"),
	),
	AddCategory: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add category"),
	),
}

// NewModel creates a new TUI model
func NewModel(deps Deps) (*Model, error) {
	initializeColors()

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20) // resized on first WindowSizeMsg
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	keyMap := list.DefaultKeyMap()
	keyMap.Filter = keys.Search
	// Category tabs own left and right
	keyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	keyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	l.KeyMap = keyMap

	md, err := renderer.NewMarkdownRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	if deps.DefaultTool == "" {
		deps.DefaultTool = tools.DefaultTool
	}

	m := &Model{
		deps:            deps,
		viewMode:        ViewLibrary,
		promptList:      l,
		help:            help.New(),
		keys:            keys,
		categories:      deps.Catalog.Categories(),
		categoryModal:   NewCategoryModal(),
		glamourRenderer: md,
		errHandler:      errors.NewTUIErrorHandler(true),
	}
	m.refreshPromptList()
	return m, nil
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(deps Deps) error {
	m, err := NewModel(deps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Prompt Catalog")
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setStatus shows text in the status bar for a few seconds
func (m *Model) setStatus(text, statusType string) tea.Cmd {
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = 3
	return clearStatusCmd()
}

// showError logs err and reports it in the status bar
func (m *Model) showError(err error) tea.Cmd {
	handled := m.errHandler.HandleError(err)
	statusType := statusError
	if m.errHandler.IsWarning(handled) {
		statusType = statusWarning
	}
	return m.setStatus(m.errHandler.FormatError(handled), statusType)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelpModal {
			if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
				m.showHelpModal = false
			}
			return m, nil
		}
		if m.categoryModal.IsActive() {
			return m.updateCategoryModal(msg)
		}

		switch m.viewMode {
		case ViewSession:
			return m.updateSession(msg)
		case ViewCreatePrompt:
			return m.updateCreatePrompt(msg)
		default:
			return m.updateLibrary(msg)
		}
	}

	// Cursor blinks and filter results
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewLibrary:
		m.promptList, cmd = m.promptList.Update(msg)
	case ViewSession:
		cmd = m.sessionForm.Update(msg)
	case ViewCreatePrompt:
		cmd = m.createForm.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// title, tabs, most used row, help and status
	availableHeight := height - 10
	if availableHeight < 5 {
		availableHeight = 5
	}
	m.promptList.SetSize(max(width-4, 20), availableHeight)

	if m.sessionForm != nil {
		m.sessionForm.Resize(width, height)
	}
	if m.createForm != nil {
		m.createForm.Resize(width, height)
	}
	m.categoryModal.Resize(width, height)
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptList.FilterState() == list.Filtering {
		if m.dropdownOpen {
			switch msg.String() {
			case "up":
				if m.suggestCursor > 0 {
					m.suggestCursor--
				}
				return m, nil
			case "down":
				if m.suggestCursor < len(m.suggestions)-1 {
					m.suggestCursor++
				}
				return m, nil
			case "enter":
				p := m.suggestions[m.suggestCursor]
				m.promptList.ResetFilter()
				m.closeDropdown()
				return m.startSession(p)
			}
		}

		var cmd tea.Cmd
		m.promptList, cmd = m.promptList.Update(msg)
		m.updateDropdown()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.selectCategory(m.category - 1)
		return m, nil
	case key.Matches(msg, m.keys.Right):
		m.selectCategory(m.category + 1)
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		if p, ok := m.promptList.SelectedItem().(*models.Prompt); ok {
			return m.startSession(p)
		}
		return m, nil
	case key.Matches(msg, m.keys.MostUsed):
		i := int(msg.String()[0] - '1')
		if i < len(m.mostUsed) {
			return m.startSession(m.mostUsed[i])
		}
		return m, nil
	case key.Matches(msg, m.keys.New):
		category := m.categories[m.category]
		if category == models.CategoryAll {
			category = ""
		}
		m.createForm = NewCreateForm(category, m.categories[1:])
		if m.width > 0 {
			m.createForm.Resize(m.width, m.height)
		}
		m.viewMode = ViewCreatePrompt
		return m, textinput.Blink
	case key.Matches(msg, m.keys.AddCategory):
		m.categoryModal.SetExisting(m.categories)
		m.categoryModal.SetActive(true)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		return m, nil
	case key.Matches(msg, m.keys.ExpandHelp):
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.promptList, cmd = m.promptList.Update(msg)
	m.updateDropdown()
	return m, cmd
}

// updateDropdown keeps the suggestion dropdown in step with the filter text
func (m *Model) updateDropdown() {
	query := m.promptList.FilterValue()
	if m.promptList.FilterState() != list.Filtering || strings.TrimSpace(query) == "" {
		m.closeDropdown()
		return
	}
	m.suggestions = m.deps.Catalog.Suggest(query, catalog.DefaultSuggestLimit)
	m.dropdownOpen = len(m.suggestions) > 0
	if m.suggestCursor >= len(m.suggestions) {
		m.suggestCursor = 0
	}
}

func (m *Model) closeDropdown() {
	m.dropdownOpen = false
	m.suggestions = nil
	m.suggestCursor = 0
}

// selectCategory activates tab i, wrapping around at both ends
func (m *Model) selectCategory(i int) {
	n := len(m.categories)
	m.category = ((i % n) + n) % n
	m.promptList.ResetFilter()
	m.refreshPromptList()
}

func (m *Model) selectCategoryNamed(name string) {
	m.categories = m.deps.Catalog.Categories()
	for i, c := range m.categories {
		if strings.EqualFold(c, name) {
			m.selectCategory(i)
			return
		}
	}
	m.selectCategory(0)
}

func (m *Model) refreshPromptList() {
	category := m.categories[m.category]
	prompts := m.deps.Catalog.List(catalog.Filter{Category: category})

	items := make([]list.Item, len(prompts))
	for i, p := range prompts {
		items[i] = p
	}
	m.promptList.SetItems(items)

	m.mostUsed = nil
	for _, p := range m.deps.Catalog.MostUsed(category, catalog.DefaultMostUsed) {
		if p.Uses() > 0 {
			m.mostUsed = append(m.mostUsed, p)
		}
	}
}

func (m Model) startSession(p *models.Prompt) (tea.Model, tea.Cmd) {
	m.sessionForm = NewSessionForm(p, m.deps.Tools, m.deps.DefaultTool, m.glamourRenderer)
	if m.width > 0 {
		m.sessionForm.Resize(m.width, m.height)
	}
	m.viewMode = ViewSession
	return m, textinput.Blink
}

func (m Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		s := m.sessionForm.Session()
		if err := s.Cancel(); err == nil {
			_ = s.Close()
		}
		m.sessionForm = nil
		m.viewMode = ViewLibrary
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m.finishSession(m.copyText)
	case key.Matches(msg, m.keys.Open):
		return m.finishSession(m.openText)
	case key.Matches(msg, m.keys.Enter) && m.sessionForm.OnToolRow():
		return m.finishSession(m.openText)
	}
	return m, m.sessionForm.Update(msg)
}

func (m Model) copyText(text string) (string, error) {
	return clipboard.CopyWithFallback(m.deps.Clipboard, text)
}

func (m Model) openText(text string) (string, error) {
	tool := m.sessionForm.Tool()
	if _, err := tools.Launch(m.deps.Opener, tool, text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Opened in %s", tool.Name), nil
}

// finishSession runs action on the rendered text once every marker is
// filled. The session stays open when the text is incomplete or the action
// fails.
func (m Model) finishSession(action func(text string) (string, error)) (tea.Model, tea.Cmd) {
	s := m.sessionForm.Session()
	if missing := s.Missing(); len(missing) > 0 {
		return m, m.showError(errors.IncompleteTemplateError(missing))
	}

	status, err := action(s.Rendered())
	if err != nil {
		return m, m.showError(err)
	}
	if _, err := s.Confirm(); err != nil {
		return m, m.showError(err)
	}
	_ = s.Close()

	if err := m.deps.Catalog.RecordUse(s.Prompt().ID); err != nil {
		m.errHandler.HandleError(err)
	}
	m.sessionForm = nil
	m.viewMode = ViewLibrary
	m.refreshPromptList()
	return m, m.setStatus(status, statusSuccess)
}

func (m Model) updateCreatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.createForm = nil
		m.viewMode = ViewLibrary
		return m, nil
	}

	cmd := m.createForm.Update(msg)
	if !m.createForm.IsSubmitted() {
		return m, cmd
	}

	p, err := m.deps.Catalog.AddPrompt(m.createForm.ToInput())
	if err != nil {
		m.createForm.Retry()
		return m, tea.Batch(cmd, m.showError(err))
	}
	m.createForm = nil
	m.viewMode = ViewLibrary
	m.selectCategoryNamed(p.Category)
	return m, tea.Batch(cmd, m.setStatus(fmt.Sprintf("Added %q", p.Name), statusSuccess))
}

func (m Model) updateCategoryModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.categoryModal.Update(msg)
	if !m.categoryModal.IsSubmitted() {
		return m, cmd
	}

	name := m.categoryModal.Name()
	m.categoryModal.Consume()
	added, err := m.deps.Catalog.AddCategory(name)
	if err != nil {
		return m, m.showError(err)
	}
	m.selectCategoryNamed(added)
	return m, m.setStatus(fmt.Sprintf("Added category %q", added), statusSuccess)
}

// View renders the current view
func (m Model) View() string {
	if m.showHelpModal {
		content := lipgloss.JoinVertical(lipgloss.Left,
			StyleTitle.Render("Keyboard Shortcuts"),
			"",
			m.help.FullHelpView(m.keys.FullHelp()),
			"",
			StyleTextDim.Render("Esc or ? to close"),
		)
		return CenterModal(StyleModal.Render(content), m.width, m.height)
	}

	if m.categoryModal.IsActive() {
		return CenterModal(m.categoryModal.View(), m.width, m.height)
	}

	var mainView string
	switch m.viewMode {
	case ViewSession:
		mainView = m.renderSessionView()
	case ViewCreatePrompt:
		mainView = m.renderCreatePromptView()
	default:
		mainView = m.renderLibraryView()
	}

	if m.statusMsg != "" {
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, CreateStatus(m.statusMsg, m.statusType)))
	}
	return AddMainPadding(mainView)
}

// renderLibraryView renders the category tabs and the prompt list
func (m Model) renderLibraryView() string {
	elements := []string{
		CreateMainHeader("Prompt Catalog"),
		CreateTabs(m.categories, m.category),
	}

	if len(m.mostUsed) > 0 {
		parts := make([]string, len(m.mostUsed))
		for i, p := range m.mostUsed {
			parts[i] = fmt.Sprintf("%d %s", i+1, p.Name)
		}
		elements = append(elements, CreateMetadata("Most used: "+strings.Join(parts, " • ")))
	}

	elements = append(elements, m.promptList.View())

	if m.dropdownOpen {
		var rows []string
		for i, p := range m.suggestions {
			rows = append(rows, CreateOption(p.Name, i == m.suggestCursor))
		}
		elements = append(elements, StyleDropdown.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	var help string
	if m.promptList.FilterState() == list.Filtering {
		help = CreateContextualHelp([]string{"↑/↓ pick suggestion • enter use • esc clear"}, nil, false, m.width)
	} else {
		essential := []string{"enter use • ←/→ category • / search"}
		additional := []string{"1-3 most used • n new prompt • a add category", "? help • q quit"}
		help = CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width)
	}
	elements = append(elements, help)

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

// renderSessionView renders the customization form of the active session
func (m Model) renderSessionView() string {
	if m.sessionForm == nil {
		return "No prompt selected"
	}
	p := m.sessionForm.Session().Prompt()

	metadata := p.Category
	if sub := p.SubcategoryOr(""); sub != "" {
		metadata += " / " + sub
	}
	if desc := p.DescriptionOr(""); desc != "" {
		metadata += " • " + desc
	}

	help := CreateContextualHelp(
		[]string{"ctrl+y copy • ctrl+o open • esc cancel"},
		[]string{"tab next field, on the tool row next tool • pgup/pgdown scroll preview"},
		m.showExpandedHelp,
		m.width,
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		CreateMainHeader(p.Name),
		CreateMetadata(metadata),
		"",
		m.sessionForm.View(),
		help,
	)
}

// renderCreatePromptView renders the add-prompt form
func (m Model) renderCreatePromptView() string {
	if m.createForm == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		CreateMainHeader("New Prompt"),
		CreateMetadata("Use [brackets] for the parts to fill in later"),
		"",
		m.createForm.View(),
		CreateContextualHelp([]string{"tab next field • ctrl+s save • esc cancel"}, nil, false, m.width),
	)
}

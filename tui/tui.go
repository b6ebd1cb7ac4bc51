// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive dashboard over contacts, deals, and tasks
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
	"github.com/bizdesk/bizdesk/viz"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewOverview
	ViewNewTask
)

// EntityType represents the tab being viewed
type EntityType int

const (
	EntityContacts EntityType = iota
	EntityDeals
	EntityTasks
)

const tabCount = 3

// Model is the main bubbletea model
type Model struct {
	store      *store.Store
	viewMode   ViewMode
	entityType EntityType

	selectedRow int
	taskInput   textinput.Model

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(s *store.Store) Model {
	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 120

	return Model{
		store:      s,
		viewMode:   ViewList,
		entityType: EntityContacts,
		taskInput:  input,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewOverview:
		return m.renderOverview()
	case ViewNewTask:
		return m.renderNewTaskView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewNewTask {
		return m.handleNewTaskKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "o":
		m.viewMode = ViewOverview
		return m, nil
	case "esc":
		m.viewMode = ViewList
		return m, nil
	}

	if m.viewMode == ViewList {
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		m.selectedRow++
	case "tab":
		m.entityType = (m.entityType + 1) % tabCount
		m.selectedRow = 0
	case "n":
		if m.entityType == EntityTasks {
			m.viewMode = ViewNewTask
			m.taskInput.SetValue("")
			m.taskInput.Focus()
		}
	case " ", "enter":
		if m.entityType == EntityTasks {
			tasks := m.store.Tasks()
			if m.selectedRow < len(tasks) {
				_, _, _ = m.store.ToggleTask(tasks[m.selectedRow].ID)
			}
		}
	case "d":
		if m.entityType == EntityTasks {
			tasks := m.store.Tasks()
			if m.selectedRow < len(tasks) {
				_ = m.store.DeleteTask(tasks[m.selectedRow].ID)
				if m.selectedRow > 0 {
					m.selectedRow--
				}
			}
		}
	}

	return m, nil
}

func (m Model) handleNewTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.taskInput.Value())
		if title != "" {
			_, _ = m.store.AddTask(models.Task{Title: title})
		}
		m.viewMode = ViewList
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("BIZDESK"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")
	s.WriteString(m.renderTable())
	s.WriteString("\n\n")
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Contacts", "Deals", "Tasks"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	switch m.entityType {
	case EntityContacts:
		return m.renderContactsTable()
	case EntityDeals:
		return m.renderDealsTable()
	case EntityTasks:
		return m.renderTasksTable()
	}
	return ""
}

func (m Model) tableHeight() int {
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderContactsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Company", Width: 20},
		{Title: "Status", Width: 10},
		{Title: "Value", Width: 12},
	}

	var rows []table.Row
	for _, contact := range m.store.Contacts() {
		rows = append(rows, table.Row{
			contact.Name,
			contact.Company,
			contact.Status,
			fmt.Sprintf("$%.2f", float64(contact.Value)/100),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderDealsTable() string {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Stage", Width: 12},
		{Title: "Value", Width: 12},
		{Title: "Collected", Width: 12},
	}

	var rows []table.Row
	for _, deal := range m.store.Deals() {
		rows = append(rows, table.Row{
			deal.Title,
			deal.Stage,
			fmt.Sprintf("$%.2f", float64(deal.Value)/100),
			fmt.Sprintf("$%.2f", float64(deal.Collected())/100),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderTasksTable() string {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Title", Width: 35},
		{Title: "Priority", Width: 10},
		{Title: "AI", Width: 4},
	}

	var rows []table.Row
	for _, task := range m.store.Tasks() {
		mark := "[ ]"
		if task.Status == models.TaskCompleted {
			mark = "[x]"
		}
		ai := ""
		if task.AISuggested {
			ai = "*"
		}
		rows = append(rows, table.Row{mark, task.Title, task.Priority, ai})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderOverview() string {
	stats := viz.GenerateDashboardStats(m.store)
	return viz.RenderDashboard(stats) + "\n" + helpStyle.Render("esc: Back • q: Quit")
}

func (m Model) renderNewTaskView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("New Task"))
	s.WriteString("\n\n")
	s.WriteString(m.taskInput.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Enter: Save • Esc: Cancel"))
	return s.String()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"o: Overview",
	}
	if m.entityType == EntityTasks {
		help = append(help, "Space: Toggle", "n: New", "d: Delete")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

// Run starts the TUI event loop.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

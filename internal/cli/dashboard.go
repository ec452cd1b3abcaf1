package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/study-buddy/internal/core"
	"github.com/valter-silva-au/study-buddy/pkg/models"
)

// Dashboard tab indices.
const (
	tabTopics = iota
	tabPlan
	tabToday
	tabCount
)

var tabNames = [tabCount]string{"Topics", "Study Plan", "Today"}

type dashboardModel struct {
	activeTab int
	cursor    int
	width     int
	height    int

	// Data.
	topics []models.Topic
	snap   core.PlanSnapshot

	// State.
	loading bool
	status  string
	err     error

	changes <-chan struct{}
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	topics []models.Topic
	snap   core.PlanSnapshot
	status string
	err    error
}

// fileChangedMsg reports that topics.yaml or plan.yaml changed on disk.
type fileChangedMsg struct{}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)

	badgeHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	badgeMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	badgeLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(changes <-chan struct{}) dashboardModel {
	return dashboardModel{
		activeTab: tabToday,
		loading:   true,
		changes:   changes,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(loadData, waitForChange(m.changes))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % tabCount
			m.cursor = 0
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			m.cursor = 0
			return m, nil
		case "j", "down":
			if m.cursor < m.rowCount()-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case " ", "enter":
			task, ok := m.selectedTask()
			if !ok {
				return m, nil
			}
			return m, toggleTask(task.ID)
		case "g":
			m.loading = true
			return m, regeneratePlan
		case "r":
			m.loading = true
			return m, loadData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.topics = msg.topics
		m.snap = msg.snap
		m.err = nil
		if msg.status != "" {
			m.status = msg.status
		}
		if n := m.rowCount(); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(loadData, waitForChange(m.changes))
	}

	return m, nil
}

// rowCount is the number of selectable rows on the active tab.
func (m dashboardModel) rowCount() int {
	switch m.activeTab {
	case tabTopics:
		return len(m.topics)
	case tabPlan:
		return len(m.snap.Tasks)
	default:
		return len(m.snap.TodayTasks) + len(m.snap.Upcoming)
	}
}

// selectedTask returns the task under the cursor. The Topics tab has none.
func (m dashboardModel) selectedTask() (models.Task, bool) {
	var tasks []models.Task
	switch m.activeTab {
	case tabPlan:
		tasks = m.snap.Tasks
	case tabToday:
		tasks = make([]models.Task, 0, len(m.snap.TodayTasks)+len(m.snap.Upcoming))
		tasks = append(tasks, m.snap.TodayTasks...)
		tasks = append(tasks, m.snap.Upcoming...)
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Study Buddy ")
	help := helpStyle.Render("tab: switch | j/k: move | space: toggle | g: regenerate | r: reload | q: quit")

	if m.loading && len(m.snap.Tasks) == 0 && len(m.topics) == 0 {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	header := fmt.Sprintf("%s  %s %d%% (%d/%d)", title,
		renderProgressBar(m.snap.Stats.Percentage, 24),
		m.snap.Stats.Percentage, m.snap.Stats.Completed, m.snap.Stats.Total)

	var body string
	switch m.activeTab {
	case tabTopics:
		body = m.renderTopicsTab()
	case tabPlan:
		body = m.renderPlanTab()
	default:
		body = m.renderTodayTab()
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	body = panelStyle.Width(width).Render(body)

	footer := help
	if m.err != nil {
		footer = errorStyle.Render("Error: "+m.err.Error()) + "\n" + help
	} else if m.status != "" {
		footer = helpStyle.Render(m.status) + "\n" + help
	}

	return fmt.Sprintf("%s\n\n%s\n%s\n%s", header, m.renderTabs(), body, footer)
}

func (m dashboardModel) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		style := tabStyle
		if i == m.activeTab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m dashboardModel) renderTopicsTab() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Topics (%d)", len(m.topics))))
	b.WriteString("\n")

	if len(m.topics) == 0 {
		b.WriteString("  No topics yet. Add one with: sb topic add <title> --subtopics a,b")
		return b.String()
	}

	for i, t := range m.topics {
		line := fmt.Sprintf("%s %s %s %dh  %s", m.pointer(i), complexityBadge(t.Complexity), priorityBadge(t.Priority), t.EstimatedHours, t.Title)
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("      " + strings.Join(t.Subtopics, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) renderPlanTab() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Study Plan (%d tasks)", len(m.snap.Tasks))))
	b.WriteString("\n")

	if len(m.snap.Tasks) == 0 {
		b.WriteString("  No plan yet. Press g to generate one.")
		return b.String()
	}

	start, end := m.visibleRange(len(m.snap.Tasks))
	for i := start; i < end; i++ {
		b.WriteString(m.renderTaskRow(i, m.snap.Tasks[i]))
		b.WriteString("\n")
	}
	if end-start < len(m.snap.Tasks) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.snap.Tasks))))
	}
	return b.String()
}

func (m dashboardModel) renderTodayTab() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Today (%s)", m.snap.Today)))
	b.WriteString("\n")

	if len(m.snap.TodayTasks) == 0 {
		b.WriteString("  Nothing scheduled for today.\n")
	}
	for i, t := range m.snap.TodayTasks {
		b.WriteString(m.renderTaskRow(i, t))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Upcoming"))
	b.WriteString("\n")
	if len(m.snap.Upcoming) == 0 {
		b.WriteString("  No upcoming tasks.")
	}
	offset := len(m.snap.TodayTasks)
	for i, t := range m.snap.Upcoming {
		b.WriteString(m.renderTaskRow(offset+i, t))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) renderTaskRow(row int, t models.Task) string {
	text := fmt.Sprintf("%s %s %3dm  %s", checkbox(t.Completed), t.Date, t.Duration, describeTask(t))
	if t.Completed {
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s %s %s", m.pointer(row), priorityBadge(t.Priority), text)
}

func (m dashboardModel) pointer(row int) string {
	if row == m.cursor {
		return cursorStyle.Render(">")
	}
	return " "
}

// visibleRange returns the window of rows that fits the terminal and keeps
// the cursor in view.
func (m dashboardModel) visibleRange(n int) (int, int) {
	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	if n <= rows {
		return 0, n
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func renderProgressBar(percentage, width int) string {
	percentage = min(max(percentage, 0), 100)
	filled := percentage * width / 100
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func complexityBadge(c models.Complexity) string {
	switch c {
	case models.ComplexityHard:
		return badgeHigh.Render("hard  ")
	case models.ComplexityMedium:
		return badgeMedium.Render("medium")
	default:
		return badgeLow.Render(fmt.Sprintf("%-6s", c))
	}
}

func priorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return badgeHigh.Render("[H]")
	case models.PriorityMedium:
		return badgeMedium.Render("[M]")
	default:
		return badgeLow.Render("[L]")
	}
}

func loadData() tea.Msg {
	return loadSnapshot("")
}

func loadSnapshot(status string) dataLoadedMsg {
	result := dataLoadedMsg{status: status}

	if TopicMgr != nil {
		topics, err := TopicMgr.ListTopics()
		if err != nil {
			result.err = fmt.Errorf("loading topics: %w", err)
			return result
		}
		result.topics = topics
	}

	if PlanMgr != nil {
		snap, err := PlanMgr.Snapshot()
		if err != nil {
			result.err = fmt.Errorf("loading plan: %w", err)
			return result
		}
		result.snap = snap
	}

	return result
}

func regeneratePlan() tea.Msg {
	tasks, err := PlanMgr.Regenerate()
	if err != nil {
		return dataLoadedMsg{err: err}
	}
	return loadSnapshot(fmt.Sprintf("Generated %d task(s).", len(tasks)))
}

func toggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := PlanMgr.Toggle(id)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		status := fmt.Sprintf("No task with id %s.", id)
		if task != nil {
			status = fmt.Sprintf("%s: %s", task.ID, checkbox(task.Completed))
		}
		return loadSnapshot(status)
	}
}

// waitForChange blocks until the watcher reports a change. A nil channel
// disables live reload.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// watchFiles watches the directories holding paths and signals on the
// returned channel when one of those files is written, created or renamed
// into place. Directories are watched because saves replace the file.
func watchFiles(paths ...string) (*fsnotify.Watcher, <-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating file watcher: %w", err)
	}

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		wanted[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !wanted[filepath.Clean(event.Name)] {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher, changes, nil
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI for topics, the study plan and today's tasks",
	Long: `Launch an interactive terminal dashboard with three tabs: Topics,
Study Plan and Today.

Switch tabs with Tab, move with j/k, toggle the selected task with space,
regenerate the plan with g, reload with r and quit with q. The view
reloads on its own when the topic or plan files change on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TopicMgr == nil || PlanMgr == nil {
			return fmt.Errorf("study services not initialized")
		}

		var changes <-chan struct{}
		watcher, ch, err := watchFiles(TopicsFilePath, PlanFilePath)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: live reload disabled: %v\n", err)
		} else {
			defer watcher.Close()
			changes = ch
		}

		p := tea.NewProgram(newDashboardModel(changes), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

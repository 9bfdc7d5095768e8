package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pgfplot"
)

type progressModel struct {
	title   string
	events  <-chan pgfplot.Event
	spinner spinner.Model
	prog    progress.Model
	items   []figureItem
	index   map[string]int
	width   int
	done    bool
}

type figureItem struct {
	name   string
	status string
	stage  pgfplot.Stage
}

type eventMsg pgfplot.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders compilation
// progress for a set of figures.
func NewProgressModel(title string, figures []string, events <-chan pgfplot.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]figureItem, 0, len(figures))
	index := make(map[string]int, len(figures))
	for i, name := range figures {
		items = append(items, figureItem{name: name, status: "queued"})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pgfplot.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev pgfplot.Event) tea.Cmd {
	if ev.Figure == "" {
		return nil
	}
	idx, ok := m.index[ev.Figure]
	if !ok {
		return nil
	}
	m.items[idx].stage = ev.Stage
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		m.items[idx].status = label
	}

	total := 0.0
	for _, item := range m.items {
		if item.status == "done" || item.status == "error" {
			total += 1.0
		} else {
			total += progressFromStage(item.stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage pgfplot.Stage) float64 {
	switch stage {
	case pgfplot.StageRender:
		return 0.1
	case pgfplot.StagePrepare:
		return 0.3
	case pgfplot.StageCompile:
		return 0.6
	case pgfplot.StageCollect:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(stage pgfplot.Stage, status pgfplot.Status) string {
	switch status {
	case pgfplot.StatusQueued:
		return "queued"
	case pgfplot.StatusDone:
		if stage == pgfplot.StageCollect {
			return "done"
		}
		return ""
	case pgfplot.StatusError:
		return "error"
	case pgfplot.StatusWorking:
		return stageLabel(stage)
	default:
		return ""
	}
}

func stageLabel(stage pgfplot.Stage) string {
	switch stage {
	case pgfplot.StageRender:
		return "rendering"
	case pgfplot.StagePrepare:
		return "preparing"
	case pgfplot.StageCompile:
		return "compiling"
	case pgfplot.StageCollect:
		return "collecting"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "rendering", "preparing", "compiling", "collecting":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

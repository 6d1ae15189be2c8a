package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	barPadding  = 2
	barMaxWidth = 60
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
)

type incrementMsg int64

type finishMsg struct{}

// model renders a single progress bar
type model struct {
	bar      progressbar.Model
	title    string
	total    int64
	done     int64
	start    time.Time
	finished bool
}

func newModel(total int64, title string) model {
	return model{
		bar:   progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(40)),
		title: title,
		total: total,
		start: time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case incrementMsg:
		m.done += int64(msg)
		return m, nil

	case finishMsg:
		m.finished = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-barPadding*2-4, barMaxWidth), 10)
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	pad := strings.Repeat(" ", barPadding)

	b.WriteString(pad + titleStyle.Render(m.title) + "\n")
	b.WriteString(pad + m.bar.ViewAs(percent(m.done, m.total)) + "\n")

	elapsed := time.Since(m.start).Truncate(time.Second)
	b.WriteString(pad + countStyle.Render(fmt.Sprintf("[%s] %d/%d trials", elapsed, m.done, m.total)))
	if m.finished {
		b.WriteString(" " + doneStyle.Render("Completed"))
	}
	b.WriteString("\n")
	return b.String()
}

// TUI shows a progress bar in a bubbletea program
type TUI struct {
	program *tea.Program
	done    chan struct{}
	err     error
}

// NewTUI creates a TUI tracker writing to out. Keyboard input and signal
// handling stay with the caller.
func NewTUI(total int64, title string, out io.Writer) *TUI {
	p := tea.NewProgram(newModel(total, title),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	return &TUI{program: p, done: make(chan struct{})}
}

// Start runs the program in the background
func (t *TUI) Start() error {
	go func() {
		defer close(t.done)
		_, t.err = t.program.Run()
	}()
	return nil
}

// Notify forwards a batch increment to the program
func (t *TUI) Notify(increment int64) {
	t.program.Send(incrementMsg(increment))
}

// Stop renders the final state and waits for the program to exit
func (t *TUI) Stop() error {
	t.program.Send(finishMsg{})
	<-t.done
	return t.err
}

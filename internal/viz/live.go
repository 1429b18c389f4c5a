package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(14).Align(lipgloss.Right)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

type TickMsg time.Time

// Live is a Bubble Tea model that advances a sysdyn.Model by one step on
// every tick until the run end is reached.
type Live struct {
	ctx      context.Context
	model    *sysdyn.Model
	start    float64
	end      float64
	step     float64
	interval time.Duration
	initial  sysdyn.State
	history  [][]float64
	steps    int
	running  bool
	done     bool
	err      error
}

// NewLive prepares m for stepping from start to end. fps controls the tick
// rate; values below one fall back to 30 frames per second.
func NewLive(ctx context.Context, m *sysdyn.Model, start, end, step float64, fps int) Live {
	if fps < 1 {
		fps = 30
	}
	m.SetTime(start)
	l := Live{
		ctx:      ctx,
		model:    m,
		start:    start,
		end:      end,
		step:     step,
		interval: time.Second / time.Duration(fps),
		initial:  m.Values(),
		running:  true,
	}
	l.resetHistory()
	if err := m.Validate(); err != nil {
		l.err = err
		l.done = true
	}
	return l
}

func (l Live) tick() tea.Cmd {
	return tea.Tick(l.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Init() tea.Cmd { return l.tick() }

// Update handles key presses and ticks.
func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.reset()
		}
	case TickMsg:
		if l.running && !l.done {
			l.advance()
		}
		return l, l.tick()
	}
	return l, nil
}

// Steps reports how many steps have been committed since the last reset.
func (l Live) Steps() int { return l.steps }

// Done reports whether the run reached its end or failed.
func (l Live) Done() bool { return l.done }

func (l Live) Err() error { return l.err }

func (l *Live) advance() {
	next := l.start + float64(l.steps+1)*l.step
	if next > l.end+l.step*1e-9 {
		l.done = true
		return
	}
	if err := l.model.Step(l.ctx, l.step); err != nil {
		l.err = err
		l.done = true
		return
	}
	l.steps++
	l.model.SetTime(next)
	l.record(l.model.Values())
}

func (l *Live) record(values sysdyn.State) {
	for i, v := range values {
		if i >= len(l.history) {
			break
		}
		l.history[i] = append(l.history[i], v)
		if len(l.history[i]) > historyCapacity {
			l.history[i] = l.history[i][1:]
		}
	}
}

// reset restores the initial stock values and restarts the clock.
func (l *Live) reset() {
	for i, s := range l.model.Stocks() {
		if i < len(l.initial) {
			s.SetValue(l.initial[i])
		}
	}
	l.model.SetTime(l.start)
	l.steps = 0
	l.done = l.err != nil
	l.resetHistory()
}

func (l *Live) resetHistory() {
	l.history = make([][]float64, len(l.initial))
	for i, v := range l.initial {
		l.history[i] = append(make([]float64, 0, historyCapacity), v)
	}
}

// View renders the TUI.
func (l Live) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(l.model.Name())) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case l.err != nil:
		status = errorStyle.Render("ERROR")
	case l.done:
		status = StatusDone.Render("DONE")
	case !l.running:
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", l.model.Time())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", l.steps)) + "\n")
	if span := l.end - l.start; span > 0 {
		s.WriteString(ProgressBar((l.model.Time()-l.start)/span, 30) + "\n")
	}
	s.WriteString("\n")

	values := l.model.Values()
	for i, name := range l.model.StockNames() {
		if name == "" {
			name = fmt.Sprintf("x%d", i)
		}
		line := labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.4f", values[i]))
		if i < len(l.history) {
			line += "  " + Sparkline(l.history[i], 30)
		}
		s.WriteString(line + "\n")
	}

	if len(l.history) > 0 && len(l.history[0]) > 1 {
		chart := asciigraph.Plot(l.history[0], asciigraph.Height(6), asciigraph.Width(50),
			asciigraph.Caption(l.model.StockNames()[0]))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if l.err != nil {
		s.WriteString(errorStyle.Render(l.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SPACE:Pause  R:Reset  Q:Quit"))
	return s.String()
}

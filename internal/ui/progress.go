package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wav2mp3/internal/cli"
)

// Phase represents the current conversion phase
type Phase int

const (
	PhaseEncoding Phase = iota
	PhaseFinishing
	PhaseDone
)

// Progress reports frames encoded so far
type Progress struct {
	Done  int64
	Total int64
}

// Finished signals that the conversion returned, successfully or not
type Finished struct{}

// Model is the Bubbletea model for a single conversion
type Model struct {
	progressBar progress.Model

	input string
	state Progress
	phase Phase
	lines []string

	startTime   time.Time
	elapsed     time.Duration
	cancel      func()
	interrupted bool
	width       int
}

// NewModel creates a progress model for converting input. cancel is called
// when the user presses Ctrl-C, since the terminal is in raw mode and no
// SIGINT reaches the process while the UI runs.
func NewModel(input string, cancel func()) *Model {
	p := progress.New(
		progress.WithGradient(string(cli.TapeBrown), string(cli.TapeAmber)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	if cancel == nil {
		cancel = func() {}
	}

	return &Model{
		progressBar: p,
		input:       filepath.Base(input),
		startTime:   time.Now(),
		cancel:      cancel,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case Progress:
		m.state = msg
		m.elapsed = time.Since(m.startTime)
		if msg.Total > 0 && msg.Done >= msg.Total {
			m.phase = PhaseFinishing
		}
		return m, nil

	case logLine:
		m.lines = append(m.lines, string(msg))
		return m, nil

	case Finished:
		m.phase = PhaseDone
		m.elapsed = time.Since(m.startTime)
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.interrupted {
			// Keep running until the converter has cleaned up and sent Finished
			m.interrupted = true
			m.cancel()
		}
	}

	return m, nil
}

// Interrupted reports whether the user pressed Ctrl-C
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Ratio returns the encoded fraction in [0, 1]
func (m *Model) Ratio() float64 {
	if m.state.Total <= 0 {
		return 0
	}
	r := float64(m.state.Done) / float64(m.state.Total)
	if r > 1 {
		r = 1
	}
	return r
}

// View renders the UI
func (m *Model) View() string {
	var s strings.Builder
	for _, line := range m.lines {
		s.WriteString(line)
		s.WriteString("\n")
	}

	// The last frame stays on screen, so drop the box once finished
	if m.phase == PhaseDone {
		return s.String()
	}

	s.WriteString(m.renderBox())
	return s.String()
}

func (m *Model) renderBox() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.TapeAmber).
		Render(cli.Banner)
	s.WriteString(title)
	s.WriteString("\n")

	label := "Encoding " + m.input
	switch {
	case m.interrupted:
		label = "Interrupting, removing partial output..."
	case m.phase == PhaseFinishing:
		label = "Checking and tagging " + strings.TrimSuffix(m.input, filepath.Ext(m.input)) + ".mp3"
	}
	s.WriteString(lipgloss.NewStyle().Foreground(cli.TapeCream).Render(label))
	s.WriteString("\n\n")

	ratio := m.Ratio()
	s.WriteString(m.progressBar.ViewAs(ratio))
	s.WriteString(fmt.Sprintf("  %3.0f%%", ratio*100))
	s.WriteString("\n")

	s.WriteString(lipgloss.NewStyle().Faint(true).Render(m.timing()))
	s.WriteString("\n")

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.TapeRust).
		Padding(0, 2).
		Render(s.String())
}

// timing renders elapsed wall time and, once some audio is encoded, the ETA
func (m *Model) timing() string {
	parts := []string{"Time: " + cli.FormatDuration(m.elapsed)}

	if r := m.Ratio(); r > 0 && r < 1 && m.elapsed > 0 {
		eta := time.Duration(float64(m.elapsed) * (1 - r) / r)
		parts = append(parts, "ETA: "+cli.FormatDuration(eta))
	}

	return strings.Join(parts, "  │  ")
}

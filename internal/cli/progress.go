package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"sf-metadata-coverage/internal/ports"
)

// newProgress picks a spinner for an interactive terminal and plain log
// lines for everything else.
func newProgress() ports.ProgressPort {
	if !interactive() {
		return logProgress{}
	}
	return &spinnerProgress{}
}

func interactive() bool {
	if os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

type logProgress struct{}

func (logProgress) Start(message string) {
	log.Info().Msg(message)
}

func (logProgress) Stop() {}

type spinnerProgress struct {
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

func (p *spinnerProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.program != nil {
		return
	}
	program := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr), tea.WithInput(nil))
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil {
			log.Debug().Err(err).Msg("progress spinner stopped")
		}
	}()
	p.program = program
	p.done = done
}

func (p *spinnerProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.program == nil {
		return
	}
	p.program.Send(spinnerStopMsg{})
	<-p.done
	p.program = nil
	p.done = nil
}

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	stopped bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerStopMsg:
		m.stopped = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.stopped {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

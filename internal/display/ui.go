// Package display renders the live session in the terminal using Bubble
// Tea. The view is dumb on purpose: it prints the pre-formatted snapshot
// fields and forwards parsed intents, nothing else.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brewflow/internal/domain"
	"brewflow/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	instructionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d4d4d8"))

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

type snapshotMsg session.Snapshot

type sessionDoneMsg struct{}

// UI drives a Bubble Tea program over a running session.
type UI struct {
	runner *session.Runner
	parser domain.IntentParser
}

// New creates the session UI.
func New(runner *session.Runner, parser domain.IntentParser) *UI {
	return &UI{runner: runner, parser: parser}
}

// Run blocks until the session tears down. Returns whether the session
// reached completion (as opposed to being exited early).
func (u *UI) Run() (bool, error) {
	m := newModel(u.runner, u.parser)
	program := tea.NewProgram(m)

	go func() {
		for {
			select {
			case snap := <-u.runner.Updates():
				program.Send(snapshotMsg(snap))
			case <-u.runner.Done():
				program.Send(sessionDoneMsg{})
				return
			}
		}
	}()

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("running session ui: %w", err)
	}
	fm, ok := final.(model)
	return ok && fm.completed, nil
}

type model struct {
	runner *session.Runner
	parser domain.IntentParser

	input     textinput.Model
	snap      session.Snapshot
	confirm   domain.IntentType // pending guarded intent, IntentUnknown when none
	showHelp  bool
	completed bool
}

func newModel(runner *session.Runner, parser domain.IntentParser) model {
	ti := textinput.New()
	ti.Placeholder = "next / pour / pause / restart / exit"
	ti.Focus()
	ti.CharLimit = 64
	return model{
		runner:  runner,
		parser:  parser,
		input:   ti,
		confirm: domain.IntentUnknown,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = session.Snapshot(msg)
		if m.snap.Completed {
			m.completed = true
		}
		return m, nil

	case sessionDoneMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.runner.Dispatch(domain.Intent{Type: domain.IntentExit})
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles one line of input: a pending confirmation answer first,
// otherwise a parsed intent. Restart and exit are destructive, so they
// are confirmed here at the boundary before the session ever sees them.
func (m model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if m.confirm != domain.IntentUnknown {
		pending := m.confirm
		m.confirm = domain.IntentUnknown
		if isYes(value) {
			m.runner.Dispatch(domain.Intent{Type: pending})
			if pending == domain.IntentExit {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.completed {
		// Any enter after completion wraps the session up.
		m.runner.Dispatch(domain.Intent{Type: domain.IntentExit})
		return m, tea.Quit
	}

	intent := m.parser.Parse(value)
	switch intent.Type {
	case domain.IntentRestart, domain.IntentExit:
		m.confirm = intent.Type
	case domain.IntentHelp:
		m.showHelp = !m.showHelp
	default:
		m.runner.Dispatch(intent)
	}
	return m, nil
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}

func (m model) View() string {
	var b strings.Builder
	snap := m.snap

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(snap.RecipeName))

	if snap.Completed {
		b.WriteString(stepStyle.Render("Brew complete"))
		b.WriteString("\n")
		b.WriteString(instructionStyle.Render(snap.Instruction))
		b.WriteString("\n")
		if snap.ElapsedText != "" {
			fmt.Fprintf(&b, "%s\n", clockStyle.Render("total "+snap.ElapsedText))
		}
		b.WriteString(hintStyle.Render("press enter to log this brew"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", stepStyle.Render(
		fmt.Sprintf("Step %d of %d (%s)", snap.StepIndex+1, snap.StepCount, snap.Kind)))
	b.WriteString(instructionStyle.Render(snap.Instruction))
	b.WriteString("\n")

	if snap.WaterLine != "" {
		fmt.Fprintf(&b, "%s\n", instructionStyle.Render(snap.WaterLine))
	}

	var clock []string
	if snap.CountdownText != "" {
		clock = append(clock, "countdown "+snap.CountdownText)
	}
	if snap.MilestoneText != "" {
		clock = append(clock, snap.MilestoneText)
	}
	if snap.ElapsedText != "" {
		clock = append(clock, "elapsed "+snap.ElapsedText)
	}
	if len(clock) > 0 {
		fmt.Fprintf(&b, "%s\n", clockStyle.Render(strings.Join(clock, "  |  ")))
	}

	for _, w := range snap.Warnings {
		fmt.Fprintf(&b, "%s\n", warnStyle.Render("! "+w))
	}

	switch {
	case snap.Paused:
		fmt.Fprintf(&b, "%s\n", pausedStyle.Render("paused -- type resume to continue"))
	case m.confirm == domain.IntentRestart:
		fmt.Fprintf(&b, "%s\n", warnStyle.Render("restart from the first step? (y/n)"))
	case m.confirm == domain.IntentExit:
		fmt.Fprintf(&b, "%s\n", warnStyle.Render("abandon this brew? (y/n)"))
	case snap.AwaitingPour:
		fmt.Fprintf(&b, "%s\n", hintStyle.Render("type pour when the water is in"))
	case snap.ReadyToAdvance:
		fmt.Fprintf(&b, "%s\n", hintStyle.Render("press enter for the next step"))
	}

	if m.showHelp {
		fmt.Fprintf(&b, "%s\n", hintStyle.Render(
			"commands: next (or enter), pour, pause, resume, restart, exit, status, help"))
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avtools/matrixctl/internal/device"
)

// switchableInputs is how many inputs the panel offers. The wire
// format can only address single-digit inputs on switch, so the panel
// stops at 9 even on 16-input hardware.
const switchableInputs = 9

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Digit   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Digit, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var panelKeys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "switch"),
	),
	Digit: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "switch direct"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Messages produced by the async device commands.
type currentInputMsg struct {
	input int
	err   error
}

type switchDoneMsg struct {
	input int
	err   error
}

// Model is the bubbletea model for the switching panel.
type Model struct {
	client *device.Client
	labels map[int]string

	cursor  int // 1-based, the highlighted input
	current int // 1-based, what the device reports; 0 = unknown
	busy    bool
	err     error

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	quitting bool
}

// NewModel builds a panel for the given client. labels maps input IDs
// to operator-assigned names and may be nil.
func NewModel(client *device.Client, labels map[int]string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		client:  client,
		labels:  labels,
		cursor:  1,
		spinner: sp,
		help:    help.New(),
		keys:    panelKeys,
	}
}

// Run starts the panel and blocks until the operator quits.
func Run(client *device.Client, labels map[int]string) error {
	_, err := tea.NewProgram(NewModel(client, labels)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.queryCurrentInput())
}

func (m Model) queryCurrentInput() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		input, err := client.CurrentInput()
		return currentInputMsg{input: input, err: err}
	}
}

func (m Model) switchTo(input int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SwitchInput(input)
		return switchDoneMsg{input: input, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			if m.cursor > 1 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Right):
			if m.cursor < switchableInputs {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.switchTo(m.cursor)

		case key.Matches(msg, m.keys.Digit):
			if m.busy {
				return m, nil
			}
			input := int(msg.String()[0] - '0')
			m.cursor = input
			m.busy = true
			m.err = nil
			return m, m.switchTo(input)

		case key.Matches(msg, m.keys.Refresh):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, m.queryCurrentInput()
		}

	case currentInputMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.current = msg.input
		if m.cursor == 1 && m.current >= 1 && m.current <= switchableInputs {
			m.cursor = m.current
		}
		return m, nil

	case switchDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			// The device may have landed somewhere unexpected;
			// re-read so the panel shows the truth.
			return m, m.queryCurrentInput()
		}
		m.current = msg.input
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Matrix Switch"))
	b.WriteString("  ")
	b.WriteString(addrStyle.Render(fmt.Sprintf("%s:%d", m.client.Host, m.client.Port)))
	b.WriteString("\n\n")

	var cells []string
	for input := 1; input <= switchableInputs; input++ {
		label := fmt.Sprintf("%d", input)
		if name, ok := m.labels[input]; ok {
			label = fmt.Sprintf("%d %s", input, name)
		}

		style := cellStyle
		switch {
		case input == m.cursor:
			style = cursorCellStyle
		case input == m.current:
			style = activeCellStyle
		}
		if input == m.current && input == m.cursor {
			style = activeCellStyle
		}
		cells = append(cells, style.Render(label))
	}
	b.WriteString(strings.Join(cells, ""))
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(statusStyle.Render(m.spinner.View() + " talking to device..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render("✗ " + device.GetShortErrorMessage(m.err)))
	case m.current > 0:
		b.WriteString(statusStyle.Render(fmt.Sprintf("● active input: %s", m.inputName(m.current))))
	default:
		b.WriteString(statusStyle.Render("current input unknown"))
	}
	b.WriteString("\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

func (m Model) inputName(input int) string {
	if name, ok := m.labels[input]; ok {
		return fmt.Sprintf("%d (%s)", input, name)
	}
	return fmt.Sprintf("%d", input)
}

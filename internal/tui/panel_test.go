package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avtools/matrixctl/internal/device"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func newTestModel() Model {
	return NewModel(device.NewClient("127.0.0.1", 5000), map[int]string{3: "Blu-ray"})
}

func TestCursorMovementStaysInRange(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyPress('h'))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor moved below 1: %d", m.cursor)
	}

	for i := 0; i < 20; i++ {
		updated, _ = m.Update(keyPress('l'))
		m = updated.(Model)
	}
	if m.cursor != switchableInputs {
		t.Errorf("cursor = %d, want %d", m.cursor, switchableInputs)
	}
}

func TestDigitKeyStartsSwitch(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(keyPress('7'))
	m = updated.(Model)

	if m.cursor != 7 {
		t.Errorf("cursor = %d, want 7", m.cursor)
	}
	if !m.busy {
		t.Error("model not busy after starting a switch")
	}
	if cmd == nil {
		t.Error("no command issued for the switch")
	}

	// Further input is ignored while the device call is in flight.
	updated, cmd = m.Update(keyPress('2'))
	m = updated.(Model)
	if m.cursor != 7 || cmd != nil {
		t.Error("busy model accepted another switch")
	}
}

func TestCurrentInputMsgSyncsCursor(t *testing.T) {
	m := newTestModel()
	m.busy = true

	updated, _ := m.Update(currentInputMsg{input: 4})
	m = updated.(Model)

	if m.busy {
		t.Error("model still busy after reply")
	}
	if m.current != 4 {
		t.Errorf("current = %d, want 4", m.current)
	}
	if m.cursor != 4 {
		t.Errorf("cursor = %d, want 4 (synced to current on first read)", m.cursor)
	}
}

func TestSwitchFailureTriggersReread(t *testing.T) {
	m := newTestModel()
	m.busy = true

	updated, cmd := m.Update(switchDoneMsg{input: 5, err: device.NewNoValidReplyError("no reply", 10, nil)})
	m = updated.(Model)

	if m.err == nil {
		t.Error("error not surfaced")
	}
	if cmd == nil {
		t.Error("failed switch should re-read the current input")
	}
}

func TestInputLabelsAppearInView(t *testing.T) {
	m := newTestModel()
	m.current = 3

	view := m.View()
	if view == "" {
		t.Fatal("empty view")
	}
	if !strings.Contains(view, "Blu-ray") {
		t.Error("input label missing from view")
	}
}

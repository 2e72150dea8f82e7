package main

import (
	"strings"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// key constructs a tea.KeyPressMsg from a string like "j", "tab", "enter",
// "ctrl+s". Single characters carry their text; named keys get their code.
func key(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	if letter, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: []rune(letter)[0], Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// wheel constructs a mouse wheel event.
func wheel(button tea.MouseButton) tea.MouseWheelMsg {
	return tea.MouseWheelMsg{Button: button}
}

// testNow is 08:10 on a day inside every sample regimen.
var testNow = time.Date(2023, time.May, 10, 8, 10, 0, 0, time.UTC)

// testModel returns a model over the sample records at testNow, width=120,
// height=40, dark background, frozen clock. Timeline rows:
//
//	0 08:00 header   1 Amoxicillin   2 Lisinopril
//	3 12:30 header   4 Vitamin D
//	5 20:00 header   6 Atorvastatin  7 Aspirin
func testModel() model {
	m := initialModel(medication.NewCollection(medication.SampleRecords()), testNow, true)
	m.frozen = true
	m.width = 120
	m.height = 40
	m.computeLineOffsets()
	return m
}

// asModel extracts the model from an Update return value.
// Panics when the type assertion fails, which is a test bug.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit returns true when cmd is the Quit command.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// press sends keys through Update in order and returns the final model.
func press(m model, keys ...string) model {
	for _, k := range keys {
		result, _ := m.Update(key(k))
		m = asModel(result)
	}
	return m
}

// typeText sends each rune of s as a key press.
func typeText(m model, s string) model {
	for _, r := range s {
		if r == ' ' {
			m = press(m, "space")
			continue
		}
		m = press(m, string(r))
	}
	return m
}

// selectedID returns the ID under the list cursor, or "".
func selectedID(m model) string {
	r, ok := m.selectedRecord()
	if !ok {
		return ""
	}
	return r.ID
}

// plain strips ANSI styling so assertions see the visible text. Styled spans
// such as the underlined active tab are emitted rune by rune.
func plain(s string) string {
	return ansi.Strip(s)
}

package main

import (
	"errors"
	"slices"
	"strings"

	"github.com/kylesnowschwartz/medtrack/medication"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// formField indexes the form's inputs in display order.
type formField int

const (
	fieldName formField = iota
	fieldDosage
	fieldFrequency
	fieldTime
	fieldStartDate
	fieldEndDate
	fieldInstructions
	fieldColor
	fieldCount
)

// fieldMeta describes one input. key is the JSON name validation errors use;
// choices, when set, make the field a picker cycled with left/right.
type fieldMeta struct {
	label   string
	key     string
	hint    string
	choices []string
}

var formFields = [fieldCount]fieldMeta{
	fieldName:         {label: "Medication name", key: "name", hint: "e.g. Amoxicillin"},
	fieldDosage:       {label: "Dosage", key: "dosage", hint: "e.g. 500mg or 1 tablet"},
	fieldFrequency:    {label: "Frequency", key: "frequency", choices: medication.Frequencies},
	fieldTime:         {label: "Time", key: "time", hint: "24-hour HH:MM, when you take this medication"},
	fieldStartDate:    {label: "Start date", key: "startDate", hint: "YYYY-MM-DD"},
	fieldEndDate:      {label: "End date", key: "endDate", hint: "YYYY-MM-DD, leave empty for ongoing medications"},
	fieldInstructions: {label: "Special instructions", key: "instructions", hint: "e.g. take with food; markdown is rendered in the detail view"},
	fieldColor:        {label: "Color tag", key: "color", choices: medication.Colors},
}

// formState is the add/edit form. editID is empty when adding.
type formState struct {
	editID    string
	values    medication.Form
	focus     formField
	errs      medication.ValidationErrors
	submitted bool // revalidate on every change after the first submit
}

// value returns a pointer to the string backing field.
func (f *formState) value(field formField) *string {
	switch field {
	case fieldName:
		return &f.values.Name
	case fieldDosage:
		return &f.values.Dosage
	case fieldFrequency:
		return &f.values.Frequency
	case fieldTime:
		return &f.values.Time
	case fieldStartDate:
		return &f.values.StartDate
	case fieldEndDate:
		return &f.values.EndDate
	case fieldInstructions:
		return &f.values.Instructions
	default:
		return &f.values.Color
	}
}

// cycle moves a choice field by delta, wrapping around.
func (f *formState) cycle(delta int) {
	choices := formFields[f.focus].choices
	if len(choices) == 0 {
		return
	}
	v := f.value(f.focus)
	i := slices.Index(choices, *v)
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(choices)) % len(choices)
	}
	*v = choices[i]
}

// revalidate refreshes field errors once the form has been submitted.
func (f *formState) revalidate() {
	if !f.submitted {
		return
	}
	f.errs = nil
	var verrs medication.ValidationErrors
	if errors.As(f.values.Validate(), &verrs) {
		f.errs = verrs
	}
}

// openForm shows the add form, or the edit form for id.
func (m *model) openForm(id string) {
	f := &formState{values: medication.NewForm(m.today())}
	if id != "" {
		r, ok := m.meds.Get(id)
		if !ok {
			return
		}
		f.editID = id
		f.values = medication.FormFromRecord(r)
	}
	m.form = f
	m.view = viewForm
	m.pendingDrop = ""
}

// closeForm returns to the tab the form was opened from.
func (m *model) closeForm() {
	m.form = nil
	m.view = m.tab
	m.detailID = ""
	m.rebuildRows()
}

// submitForm validates and saves the form. Validation failures stay on the
// form with per-field messages.
func (m *model) submitForm() {
	f := m.form
	f.submitted = true

	var (
		r   medication.Record
		err error
	)
	if f.editID == "" {
		r, err = m.meds.Add(f.values)
	} else {
		r, err = m.meds.Update(f.editID, f.values)
	}

	var verrs medication.ValidationErrors
	if errors.As(err, &verrs) {
		f.errs = verrs
		m.statusErr = true
		m.status = "Please fix the highlighted fields."
		return
	}
	if err != nil {
		m.setError("Couldn't save medication", err)
		return
	}

	if f.editID == "" {
		m.log.Info("medication added", "id", r.ID, "name", r.Name, "time", r.Time)
		m.setStatus(r.Name + " has been added to your medications.")
	} else {
		m.log.Info("medication updated", "id", r.ID, "name", r.Name, "time", r.Time)
		m.setStatus(r.Name + " has been updated successfully.")
	}
	m.persist()
	m.regroup()
	m.closeForm()
	if i := indexOfRecord(m.rows, r.ID); i >= 0 {
		m.cursor = i
		m.ensureCursorVisible()
	}
}

// updateForm handles key events in the add/edit form.
func (m model) updateForm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.view = m.tab
		return m, nil
	}
	choice := len(formFields[f.focus].choices) > 0

	switch msg.String() {
	case "esc":
		m.closeForm()
		m.setStatus("Changes discarded.")
	case "ctrl+s":
		m.submitForm()
	case "enter":
		if f.focus == fieldCount-1 {
			m.submitForm()
		} else {
			f.focus++
		}
	case "tab", "down":
		f.focus = (f.focus + 1) % fieldCount
	case "shift+tab", "up":
		f.focus = (f.focus + fieldCount - 1) % fieldCount
	case "ctrl+r":
		f.values = medication.NewForm(m.today())
		f.errs = nil
		f.submitted = false
		m.setStatus("All fields have been cleared.")
	case "left":
		f.cycle(-1)
		f.revalidate()
	case "right", "space":
		if choice {
			f.cycle(1)
			f.revalidate()
		} else if msg.String() == "space" {
			*f.value(f.focus) += " "
			f.revalidate()
		}
	case "backspace":
		if !choice {
			v := f.value(f.focus)
			if r := []rune(*v); len(r) > 0 {
				*v = string(r[:len(r)-1])
			}
			f.revalidate()
		}
	case "ctrl+u":
		if !choice {
			*f.value(f.focus) = ""
			f.revalidate()
		}
	default:
		if !choice && msg.Text != "" {
			*f.value(f.focus) += msg.Text
			f.revalidate()
		}
	}
	return m, nil
}

// renderFormView renders the add/edit form with inline validation messages.
func (m model) renderFormView() string {
	f := m.form
	width := m.clampWidth()
	if f == nil {
		return m.renderListView()
	}

	title := "Add New Medication"
	if f.editID != "" {
		title = "Edit Medication"
	}
	lines := []string{m.th.AccentBold.Render(title), ""}

	inputWidth := max(min(width-4, 60), 20)
	for i := range fieldCount {
		meta := formFields[i]
		focused := i == f.focus

		label := m.th.Secondary.Render(meta.label)
		if focused {
			label = m.th.PrimaryBold.Render(meta.label)
		}
		lines = append(lines, m.selectionIndicator(focused)+label)

		v := *f.value(i)
		var input string
		if len(meta.choices) > 0 {
			input = "‹ " + v + " ›"
			if i == fieldColor {
				input = lipgloss.NewStyle().Foreground(m.th.tagColor(v)).Render("▌") + " " + input
			}
		} else {
			input = v
			if focused {
				input += "█"
			}
		}

		border := m.th.Border
		if focused {
			border = m.th.Accent
		}
		if _, bad := f.errs[meta.key]; bad {
			border = m.th.Error
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(border).
			Width(inputWidth).
			Render(truncate(input, inputWidth))
		lines = append(lines, indentBlock(box, "  "))

		if msg, bad := f.errs[meta.key]; bad {
			lines = append(lines, "  "+m.th.ErrorBold.Render(IconFieldErr+" "+msg))
		} else if focused && meta.hint != "" {
			lines = append(lines, "  "+m.th.Dim.Render(meta.hint))
		}
	}

	body := strings.Join(lines, "\n")
	footer := m.renderFooter(width)

	all := strings.Split(body, "\n")
	// Keep the focused field on screen on short terminals.
	viewHeight := max(m.height-footer.lines, 1)
	if !m.inline && len(all) > viewHeight {
		focusLine := 2 // title + blank
		for i := range f.focus {
			focusLine += 3 // label + input with underline
			if _, bad := f.errs[formFields[i].key]; bad {
				focusLine++
			}
		}
		start := max(min(focusLine-viewHeight/2, len(all)-viewHeight), 0)
		all = all[start : start+viewHeight]
	}
	if !m.inline {
		for len(all) < viewHeight {
			all = append(all, "")
		}
	}
	return strings.Join(all, "\n") + "\n" + footer.content
}

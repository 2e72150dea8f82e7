package main

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// -- Colors ---------------------------------------------------------------
// Every color has a light and a dark variant, picked once at startup from
// the detected terminal background.
// Light values: ANSI 0-15 for accents (palette-adaptive), 256-color for grays
// (predictable). ANSI 7/15 (white) are invisible on light backgrounds -- never
// use them for Light values.
// Dark values: ANSI 256-color codes tuned for dark backgrounds.
//
// | Name          | Light | Dark  | Light desc    | Dark desc      |
// |---------------|-------|-------|---------------|----------------|
// | TextPrimary   |   "0" | "252" | black         | light gray     |
// | TextSecondary |   "8" | "245" | ANSI dk gray  | gray           |
// | TextDim       | "242" | "243" | medium gray   | gray           |
// | TextMuted     | "245" | "240" | med-lt gray   | dark gray      |
// | Accent        |   "4" |  "75" | blue          | blue           |
// | Error         |   "1" | "196" | red           | red            |
// | Taken         |   "2" |  "76" | green         | green          |
// | Border        | "250" |  "60" | subtle gray   | muted blue     |
// | SelectedBg    | "254" | "237" | subtle elev.  | subtle elev.   |

// theme carries the resolved palette and the styles built from it.
// lipgloss styles are immutable values, so callers chain freely.
type theme struct {
	dark bool

	TextPrimary   color.Color
	TextSecondary color.Color
	TextDim       color.Color
	TextMuted     color.Color
	Accent        color.Color
	Error         color.Color
	Taken         color.Color
	Border        color.Color
	SelectedBg    color.Color

	// Record color tags (MedicationCard color map).
	Tags map[string]color.Color

	PrimaryBold   lipgloss.Style
	Secondary     lipgloss.Style
	Dim           lipgloss.Style
	Muted         lipgloss.Style
	AccentBold    lipgloss.Style
	ErrorBold     lipgloss.Style
	TakenStyle    lipgloss.Style
	CurrentPill   lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Instructions  lipgloss.Style
	StatusMessage lipgloss.Style
}

func newTheme(dark bool) theme {
	ac := adaptive(dark)
	t := theme{
		dark:          dark,
		TextPrimary:   ac("0", "252"),
		TextSecondary: ac("8", "245"),
		TextDim:       ac("242", "243"),
		TextMuted:     ac("245", "240"),
		Accent:        ac("4", "75"),
		Error:         ac("1", "196"),
		Taken:         ac("2", "76"),
		Border:        ac("250", "60"),
		SelectedBg:    ac("254", "237"),
		Tags: map[string]color.Color{
			"red":    ac("1", "204"),
			"blue":   ac("4", "75"),
			"green":  ac("2", "114"),
			"yellow": ac("3", "220"),
			"purple": ac("5", "177"),
		},
	}

	t.PrimaryBold = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Secondary = lipgloss.NewStyle().Foreground(t.TextSecondary)
	t.Dim = lipgloss.NewStyle().Foreground(t.TextDim)
	t.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.AccentBold = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.ErrorBold = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.TakenStyle = lipgloss.NewStyle().Foreground(t.Taken)
	t.CurrentPill = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Background(t.SelectedBg).Padding(0, 1)
	t.TabActive = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true)
	t.TabInactive = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Instructions = lipgloss.NewStyle().Foreground(t.TextSecondary).Italic(true)
	t.StatusMessage = lipgloss.NewStyle().Foreground(t.Taken)
	return t
}

// tagColor returns the color for a record's tag, falling back to the border
// gray for unknown or empty tags.
func (t theme) tagColor(tag string) color.Color {
	if c, ok := t.Tags[tag]; ok {
		return c
	}
	return t.Border
}

// adaptive returns a constructor that picks the light or dark variant.
func adaptive(dark bool) func(light, darkVariant string) color.Color {
	return func(light, darkVariant string) color.Color {
		if dark {
			return lipgloss.Color(darkVariant)
		}
		return lipgloss.Color(light)
	}
}

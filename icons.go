package main

// Icons used throughout the TUI.
// Using standard Unicode symbols for maximum terminal compatibility.
const (
	IconSlot      = "◷" // Time slot header
	IconPast      = "○" // Slot already behind the clock
	IconCurrent   = "◉" // Slot inside the current window
	IconUpcoming  = "◯" // Slot still ahead
	IconTaken     = "✓" // Dose marked taken
	IconPending   = "•" // Dose not yet taken
	IconCursor    = "▸" // Row cursor
	IconDot       = "·" // Separator dot
	IconSelected  = "│" // Selected row sidebar
	IconUnsched   = "?" // Record with an unparseable time
	IconCalendar  = "▦" // Calendar header
	IconFieldErr  = "✕" // Form validation message
)

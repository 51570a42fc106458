package splash

// Requests a host can send into the program (for example with
// tea.Program.Send from another goroutine). An empty ID targets every
// overlay.
type (
	// ShowMsg asks the overlay to show itself again.
	ShowMsg struct{ ID string }

	// HideMsg asks the overlay to hide now.
	HideMsg struct{ ID string }

	// UpdateOptionsMsg merges Options into the live configuration.
	UpdateOptionsMsg struct {
		ID      string
		Options Partial
	}
)

// HiddenMsg is emitted once per hide, after the completion work ran.
type HiddenMsg struct{ ID string }

// Timer messages. Each carries the generation it was scheduled under; a
// message from an older generation is stale and ignored.
type (
	initMsg struct{ id string }

	autoHideMsg struct {
		id  string
		gen int
	}

	progressTickMsg struct {
		id  string
		gen int
	}

	fallbackMsg struct {
		id    string
		cycle int
	}

	frameMsg struct {
		id  string
		gen int
	}
)

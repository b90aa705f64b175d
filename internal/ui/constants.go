package ui

// Window
const (
	AppID       = "io.github.tasklist"
	WindowTitle = "Tasks"

	WindowWidth  float32 = 420
	WindowHeight float32 = 560
)

// Form
const (
	EntryPlaceholder = "What needs doing?"
	AddLabel         = "Add"
)

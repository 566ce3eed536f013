package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconRunning   = "▶"
	IconPaused    = "⏸"
	IconCompleted = "⏰"
	IconDismissed = "✓"
	IconBell      = "🔔"
)

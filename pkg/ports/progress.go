package ports

// Progress reports long-running per-frame work to the user.
// Implementations must tolerate Finish without a prior Start.
type Progress interface {
	// Start begins a progress run of total units with a display label.
	Start(total int, label string)

	// Increment advances the progress by one unit.
	Increment()

	// Finish completes the run and releases the display.
	Finish()
}

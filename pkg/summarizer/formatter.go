// Package summarizer builds human-readable run summaries: what was
// sampled, what the model produced, and where the archive landed.
package summarizer

// Formatter renders a Summary as text.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a plain function to the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements Formatter by calling f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

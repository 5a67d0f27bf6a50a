package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets a translation function applied to all labels.
func WithTranslator(translate func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion includes the tool version in the output.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter with the given options.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Extraction Summary"))
	fmt.Fprintf(&b, "%s: %s\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		fmt.Fprintf(&b, "%s: %s\n", t("Version"), f.version)
	}
	b.WriteString("\n")

	f.section(&b, t("Source"))
	f.row(&b, t("Video"), summary.Source.Path)
	f.row(&b, t("Native FPS"), fmt.Sprintf("%.2f", summary.Source.NativeFPS))
	b.WriteString("\n")

	f.section(&b, t("Sampling"))
	f.row(&b, t("Target FPS"), fmt.Sprintf("%d", summary.Sampling.TargetFPS))
	f.row(&b, t("Stride"), fmt.Sprintf("%d", summary.Sampling.Stride))
	f.row(&b, t("Frames Kept"), fmt.Sprintf("%d / %d", summary.Sampling.FramesKept, summary.Sampling.TotalDecoded))
	b.WriteString("\n")

	f.section(&b, t("Mesh"))
	f.row(&b, t("Frames"), fmt.Sprintf("%d", summary.Mesh.FrameCount))
	f.row(&b, t("Vertices per Frame"), fmt.Sprintf("%d", summary.Mesh.VertexCount))
	f.row(&b, t("Triangles"), fmt.Sprintf("%d", summary.Mesh.TriangleCount))
	f.row(&b, t("Camera Params"), fmt.Sprintf("%d", summary.Mesh.CameraDim))
	b.WriteString("\n")

	f.section(&b, t("Model"))
	f.row(&b, t("Device"), summary.Model.Device)
	f.row(&b, t("Checkpoint"), summary.Model.Checkpoint)
	f.row(&b, t("Load Time"), fmt.Sprintf("%d ms", summary.Model.LoadMs))
	f.row(&b, t("Inference Time"), fmt.Sprintf("%d ms", summary.Model.InferMs))
	b.WriteString("\n")

	f.section(&b, t("Output"))
	f.row(&b, t("Archive"), summary.Archive.Path)
	f.row(&b, t("Size"), formatBytes(summary.Archive.FileSize))

	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|------|-------|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

// formatBytes renders a byte count in human-readable form.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

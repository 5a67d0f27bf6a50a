package summarizer

import (
	"fmt"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Writer renders a summary through its Formatter and saves the result.
// All file output in the pipeline goes through ports.FileSystem, and
// the summary is no exception.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer that formats with formatter and writes
// through fs.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{formatter: formatter, fs: fs}
}

// Write formats the summary and writes it to path. Missing parent
// directories are created by the filesystem.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

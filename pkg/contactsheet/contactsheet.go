// Package contactsheet composes sampled frames into a single labelled grid image.
package contactsheet

import (
	"fmt"
	"image"
	"image/color"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// labelHeight is the strip under each cell that carries the frame label.
const labelHeight = 18

// Options configures the contact sheet layout.
type Options struct {
	// Columns is the number of cells per row.
	Columns int
	// CellWidth is the width of each cell in pixels. Cell height follows
	// the aspect ratio of the first frame.
	CellWidth int
	// Gap is the spacing between cells in pixels.
	Gap int
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Columns:   5,
		CellWidth: 320,
		Gap:       8,
	}
}

// Render lays the frames out in a grid, each cell labelled with the frame's
// original index in the source video.
func Render(renderer ports.Renderer, frames []image.Image, indices []int, opts Options) (image.Image, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to compose")
	}
	if len(frames) != len(indices) {
		return nil, fmt.Errorf("frame/index count mismatch: %d frames, %d indices", len(frames), len(indices))
	}

	if opts.Columns <= 0 {
		opts.Columns = DefaultOptions().Columns
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultOptions().CellWidth
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}

	cols := opts.Columns
	if len(frames) < cols {
		cols = len(frames)
	}
	rows := (len(frames) + cols - 1) / cols

	firstBounds := frames[0].Bounds()
	if firstBounds.Dx() <= 0 || firstBounds.Dy() <= 0 {
		return nil, fmt.Errorf("first frame has no pixels")
	}

	cellWidth := opts.CellWidth
	cellHeight := cellWidth * firstBounds.Dy() / firstBounds.Dx()

	sheetWidth := cols*cellWidth + (cols-1)*opts.Gap
	sheetHeight := rows*(cellHeight+labelHeight) + (rows-1)*opts.Gap

	canvas := renderer.CreateCanvas(sheetWidth, sheetHeight, color.Black)

	for i, frame := range frames {
		col := i % cols
		row := i / cols

		x := col * (cellWidth + opts.Gap)
		y := row * (cellHeight + labelHeight + opts.Gap)

		cell := renderer.ResizeImage(frame, cellWidth, cellHeight)
		canvas.DrawImage(cell, x, y)

		label := fmt.Sprintf("frame %d", indices[i])
		canvas.DrawText(label, float64(x+4), float64(y+cellHeight)+labelHeight/2, color.White)
	}

	return canvas.ToImage(), nil
}

package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image drawing for debug artifacts. All artifacts
// are encoded as PNG: overlays and contact sheets exist to be inspected
// pixel by pixel, so lossy formats are out.
type Renderer interface {
	// CreateCanvas creates a drawing canvas with the given dimensions
	// and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for overlay composition.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawPoint draws a filled dot centered at (x, y).
	DrawPoint(x, y, radius float64, c color.Color)

	// DrawText draws a text label anchored at (x, y).
	DrawText(text string, x, y float64, c color.Color)

	// ToImage returns the canvas content as an image.Image.
	ToImage() image.Image
}

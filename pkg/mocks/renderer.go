package mocks

import (
	"image"
	"image/color"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodePNGFunc    func(img image.Image) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// LastCanvas is the canvas handed out by the default CreateCanvas
	// (for test verification).
	LastCanvas *Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	m.LastCanvas = &Canvas{width: width, height: height}
	return m.LastCanvas
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte("encoded"), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records draws.
type Canvas struct {
	width  int
	height int

	Images []image.Image
	Points []PointCall
	Texts  []TextCall
}

// PointCall records a call to DrawPoint.
type PointCall struct {
	X, Y, Radius float64
}

// TextCall records a call to DrawText.
type TextCall struct {
	Text string
	X, Y float64
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Images = append(m.Images, img)
}

func (m *Canvas) DrawPoint(x, y, radius float64, c color.Color) {
	m.Points = append(m.Points, PointCall{X: x, Y: y, Radius: radius})
}

func (m *Canvas) DrawText(text string, x, y float64, c color.Color) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y})
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)

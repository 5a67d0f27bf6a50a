// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/tejasp2022/handfoundationmodel/pkg/contactsheet"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// vertexColor marks projected mesh vertices on overlay images.
var vertexColor = color.RGBA{G: 255, A: 255}

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSampledFrame saves a retained frame as PNG, named by its original
// index in the source video.
func (s *Sink) SaveSampledFrame(frameIndex int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames", "sampled")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode sampled frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.png", frameIndex))
	return s.fs.WriteFile(path, data)
}

// SaveMeshOverlay saves the frame with the reconstructed mesh vertices
// projected on top of it.
func (s *Sink) SaveMeshOverlay(frameIndex int, img image.Image, mesh ports.Mesh) error {
	dir := filepath.Join(s.baseDir, "frames", "overlay")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}

	bounds := img.Bounds()
	canvas := s.renderer.CreateCanvas(bounds.Dx(), bounds.Dy(), color.Black)
	canvas.DrawImage(img, 0, 0)

	for _, p := range projectVertices(mesh, bounds.Dx(), bounds.Dy()) {
		canvas.DrawPoint(p[0], p[1], 1.5, vertexColor)
	}

	data, err := s.renderer.EncodePNG(canvas.ToImage())
	if err != nil {
		return fmt.Errorf("encode overlay: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.png", frameIndex))
	return s.fs.WriteFile(path, data)
}

// SaveContactSheet saves one grid image of all retained frames, labelled
// with their original indices.
func (s *Sink) SaveContactSheet(frames []image.Image, indices []int) error {
	sheet, err := contactsheet.Render(s.renderer, frames, indices, contactsheet.DefaultOptions())
	if err != nil {
		return fmt.Errorf("compose contact sheet: %w", err)
	}
	data, err := s.renderer.EncodePNG(sheet)
	if err != nil {
		return fmt.Errorf("encode contact sheet: %w", err)
	}
	path := filepath.Join(s.baseDir, "contact_sheet.png")
	return s.fs.WriteFile(path, data)
}

// SaveRunJSON saves the run metadata as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "run.json")
	return s.fs.WriteFile(path, data)
}

// projectVertices maps mesh vertices onto pixel coordinates using the
// weak-perspective camera [s, tx, ty]. Vertices land in [0, W)x[0, H)
// when the normalized coordinates fall inside [-1, 1].
func projectVertices(mesh ports.Mesh, width, height int) [][2]float64 {
	if len(mesh.Camera) < 3 {
		return nil
	}
	scale := float64(mesh.Camera[0])
	tx := float64(mesh.Camera[1])
	ty := float64(mesh.Camera[2])

	points := make([][2]float64, 0, len(mesh.Vertices)/3)
	for i := 0; i+2 < len(mesh.Vertices); i += 3 {
		x := float64(mesh.Vertices[i])
		y := float64(mesh.Vertices[i+1])
		u := (scale*x + tx + 1) * float64(width) / 2
		v := (scale*y + ty + 1) * float64(height) / 2
		points = append(points, [2]float64{u, v})
	}
	return points
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

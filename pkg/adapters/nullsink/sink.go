// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveSampledFrame does nothing.
func (s *Sink) SaveSampledFrame(frameIndex int, img image.Image) error {
	return nil
}

// SaveMeshOverlay does nothing.
func (s *Sink) SaveMeshOverlay(frameIndex int, img image.Image, mesh ports.Mesh) error {
	return nil
}

// SaveContactSheet does nothing.
func (s *Sink) SaveContactSheet(frames []image.Image, indices []int) error {
	return nil
}

// SaveRunJSON does nothing.
func (s *Sink) SaveRunJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

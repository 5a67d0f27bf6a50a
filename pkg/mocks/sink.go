package mocks

import (
	"image"
	"sync"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SampledFrames map[int]image.Image
	Overlays      map[int]ports.Mesh
	SheetFrames   []image.Image
	SheetIndices  []int
	RunJSON       []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		SampledFrames: make(map[int]image.Image),
		Overlays:      make(map[int]ports.Mesh),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSampledFrame(frameIndex int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SampledFrames[frameIndex] = img
	return nil
}

func (m *DebugSink) SaveMeshOverlay(frameIndex int, img image.Image, mesh ports.Mesh) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overlays[frameIndex] = mesh
	return nil
}

func (m *DebugSink) SaveContactSheet(frames []image.Image, indices []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SheetFrames = frames
	m.SheetIndices = indices
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

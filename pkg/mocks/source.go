// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"sync"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
type VideoSource struct {
	OpenFunc func(path string) (ports.VideoStream, error)

	// Recorded calls for verification
	OpenedPaths []string
}

func (m *VideoSource) Open(path string) (ports.VideoStream, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	return NewVideoStream(30.0, 0), nil
}

var _ ports.VideoSource = (*VideoSource)(nil)

// VideoStream is a scripted implementation of ports.VideoStream that
// serves a fixed number of synthetic 4x4 frames.
type VideoStream struct {
	mu sync.Mutex

	fps    float64
	total  int
	cursor int

	ReadFrameFunc func(index int) (image.Image, bool)

	// Recorded calls for verification
	CloseCalls int
}

// NewVideoStream creates a stream that serves total frames at the given
// declared frame rate.
func NewVideoStream(fps float64, total int) *VideoStream {
	return &VideoStream{fps: fps, total: total}
}

func (m *VideoStream) FPS() float64 {
	return m.fps
}

func (m *VideoStream) ReadFrame() (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.cursor
	if m.ReadFrameFunc != nil {
		img, ok := m.ReadFrameFunc(idx)
		if ok {
			m.cursor++
		}
		return img, ok
	}
	if idx >= m.total {
		return nil, false
	}
	m.cursor++
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	// Tag the first pixel with the frame index so ordering is testable.
	img.Pix[0] = uint8(idx % 256)
	img.Pix[3] = 255
	return img, true
}

func (m *VideoStream) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

var _ ports.VideoStream = (*VideoStream)(nil)

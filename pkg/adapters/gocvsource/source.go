// Package gocvsource provides a video source backed by OpenCV.
package gocvsource

import (
	"fmt"
	"image"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
	"gocv.io/x/gocv"
)

// Source opens video files through OpenCV's VideoCapture.
type Source struct{}

// New creates a new Source.
func New() *Source {
	return &Source{}
}

// Open opens the video file at path for sequential decoding.
func (s *Source) Open(path string) (ports.VideoStream, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	return &stream{
		capture: capture,
		fps:     capture.Get(gocv.VideoCaptureFPS),
		mat:     gocv.NewMat(),
	}, nil
}

// stream decodes frames sequentially from an open capture.
type stream struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	fps     float64
	closed  bool
}

// FPS returns the native frame rate reported by the container.
// Zero when the container does not declare one.
func (s *stream) FPS() float64 {
	return s.fps
}

// ReadFrame decodes the next frame and returns it as an RGB-ordered
// image. Returns false when the stream is exhausted.
func (s *stream) ReadFrame() (image.Image, bool) {
	if s.closed {
		return nil, false
	}
	if !s.capture.Read(&s.mat) || s.mat.Empty() {
		return nil, false
	}
	// ToImage converts OpenCV's BGR layout into an RGBA image.
	img, err := s.mat.ToImage()
	if err != nil {
		return nil, false
	}
	return img, true
}

// Close releases the capture. Safe to call more than once.
func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.mat.Close()
	return s.capture.Close()
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)

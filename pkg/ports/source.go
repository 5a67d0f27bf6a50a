package ports

import (
	"image"
)

// VideoSource abstracts opening video containers for decoding.
type VideoSource interface {
	// Open opens the video at path and prepares it for sequential
	// decoding. The returned stream must be closed by the caller.
	// Returns an error naming the path when the container cannot
	// be opened.
	Open(path string) (VideoStream, error)
}

// VideoStream is a forward-only decoder over a single opened video.
type VideoStream interface {
	// FPS returns the container's declared frame rate.
	// Returns 0 when the container does not declare one.
	FPS() float64

	// ReadFrame decodes the next frame in decode order and returns it
	// as an RGB image. ok is false once the stream is exhausted or a
	// frame cannot be decoded.
	ReadFrame() (img image.Image, ok bool)

	// Close releases decoder resources. Safe to call more than once.
	Close() error
}

package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSampledFrame saves one retained frame as it entered inference.
	// frameIndex is the frame's zero-based index in the original video.
	SaveSampledFrame(frameIndex int, img image.Image) error

	// SaveMeshOverlay saves a sampled frame with its reconstructed mesh
	// vertices projected and drawn on top.
	SaveMeshOverlay(frameIndex int, img image.Image, mesh Mesh) error

	// SaveContactSheet saves one grid image of all retained frames,
	// labelled with their original indices.
	SaveContactSheet(frames []image.Image, indices []int) error

	// SaveRunJSON saves the run result as JSON.
	SaveRunJSON(data []byte) error
}

package pipeline

import (
	"image"
)

// =============================================================================
// Sample Stage Types
// =============================================================================

// SampleInput contains parameters for frame sampling.
type SampleInput struct {
	VideoPath string
	FPSSample int // Target sampling rate in frames per second
}

// DefaultSampleInput returns SampleInput with default values.
func DefaultSampleInput() SampleInput {
	return SampleInput{
		FPSSample: 2,
	}
}

// SampleResult contains the retained frames and their provenance.
type SampleResult struct {
	// Frames holds the retained frames in decode order, converted to RGB.
	Frames []image.Image

	// Indices holds the zero-based index each retained frame had in the
	// original video. Always the same length as Frames.
	Indices []int

	NativeFPS    float64 // Frame rate declared by the container
	Stride       int     // Keep-every-Nth interval actually used
	TotalDecoded int     // Frames decoded from the container in total
}

// =============================================================================
// Infer Stage Types
// =============================================================================

// InferInput contains parameters for mesh inference.
type InferInput struct {
	// Frames are the sampled frames, in sampling order.
	Frames []image.Image

	// Indices are the original frame indices, parallel to Frames.
	// Used for error reporting and debug artifacts.
	Indices []int
}

// InferResult contains per-frame reconstructions in sampling order.
type InferResult struct {
	// Vertices holds FrameCount*VertexCount*3 float32 values, frame-major.
	Vertices []float32

	// Cameras holds FrameCount*CameraDim float32 values, frame-major.
	Cameras []float32

	// Topology is the model's static triangle index list, flat triples.
	Topology []int32

	VertexCount int // vertices per frame mesh
	CameraDim   int // camera parameters per frame
	LoadMs      int // model load duration in milliseconds
	InferMs     int // total forward-pass duration in milliseconds
}

// FrameCount returns the number of frames the result covers.
func (r InferResult) FrameCount() int {
	if r.VertexCount == 0 {
		return 0
	}
	return len(r.Vertices) / (r.VertexCount * 3)
}

// =============================================================================
// Archive Stage Types
// =============================================================================

// ArchiveInput contains the aligned arrays to serialize.
type ArchiveInput struct {
	Vertices    []float32 // frame-major, FrameCount*VertexCount*3
	Cameras     []float32 // frame-major, FrameCount*CameraDim
	Topology    []int32   // flat triangle index triples
	Indices     []int     // original frame indices, one per frame
	VertexCount int
	CameraDim   int
}

// ArchiveResult contains the encoded archive.
type ArchiveResult struct {
	// Data is the complete compressed archive, ready to write.
	Data []byte

	// FrameCount is the number of frames the archive covers.
	FrameCount int

	// Shapes maps each archive entry name to its array shape.
	Shapes map[string][]int
}

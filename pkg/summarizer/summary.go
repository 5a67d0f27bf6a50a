// Package summarizer builds human-readable run summaries: what was
// sampled, what the model produced, and where the archive landed.
package summarizer

import "time"

// Summary contains all data collected during an extraction run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input video information
	Source SourceInfo

	// Frame sampling results
	Sampling SamplingInfo

	// Reconstructed mesh dimensions
	Mesh MeshInfo

	// Model execution details
	Model ModelInfo

	// Archive output details
	Archive ArchiveInfo
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path      string
	NativeFPS float64
}

// SamplingInfo describes how frames were selected.
type SamplingInfo struct {
	TargetFPS    int
	Stride       int
	FramesKept   int
	TotalDecoded int
}

// MeshInfo describes the reconstructed mesh arrays.
type MeshInfo struct {
	FrameCount    int
	VertexCount   int
	TriangleCount int
	CameraDim     int
}

// ModelInfo describes the model run.
type ModelInfo struct {
	Device     string
	Checkpoint string
	LoadMs     int
	InferMs    int
}

// ArchiveInfo describes the written archive.
type ArchiveInfo struct {
	Path     string
	FileSize int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets input video information.
func (b *Builder) WithSource(path string, nativeFPS float64) *Builder {
	b.summary.Source = SourceInfo{
		Path:      path,
		NativeFPS: nativeFPS,
	}
	return b
}

// WithSampling sets frame sampling information.
func (b *Builder) WithSampling(targetFPS, stride, framesKept, totalDecoded int) *Builder {
	b.summary.Sampling = SamplingInfo{
		TargetFPS:    targetFPS,
		Stride:       stride,
		FramesKept:   framesKept,
		TotalDecoded: totalDecoded,
	}
	return b
}

// WithMesh sets mesh dimension information.
func (b *Builder) WithMesh(mesh MeshInfo) *Builder {
	b.summary.Mesh = mesh
	return b
}

// WithModel sets model execution information.
func (b *Builder) WithModel(model ModelInfo) *Builder {
	b.summary.Model = model
	return b
}

// WithArchive sets archive output information.
func (b *Builder) WithArchive(path string, fileSize int64) *Builder {
	b.summary.Archive = ArchiveInfo{
		Path:     path,
		FileSize: fileSize,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

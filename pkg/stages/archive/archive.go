// Package archive implements the mesh serialization stage.
package archive

import (
	"context"
	"fmt"

	"github.com/tejasp2022/handfoundationmodel/pkg/npz"
	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Entry names inside the archive, fixed by the output contract.
const (
	EntryVertices     = "vertices"
	EntryFaces        = "faces"
	EntryCameras      = "cameras"
	EntryFrameIndices = "frame_indices"
)

// Stage packs aligned reconstruction arrays into one compressed archive.
type Stage struct {
	logger ports.Logger
}

// New creates a new archive stage.
func New(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("archive"),
	}
}

// Execute validates first-axis alignment and encodes the archive.
// A zero-frame input still produces a valid archive whose per-frame
// arrays have a first dimension of 0.
func (s *Stage) Execute(ctx context.Context, input pipeline.ArchiveInput) (pipeline.ArchiveResult, error) {
	result := pipeline.ArchiveResult{}

	if input.VertexCount <= 0 {
		return result, fmt.Errorf("vertex count must be positive, got %d", input.VertexCount)
	}
	if input.CameraDim <= 0 {
		return result, fmt.Errorf("camera dim must be positive, got %d", input.CameraDim)
	}
	if len(input.Topology)%3 != 0 {
		return result, fmt.Errorf("topology length %d is not a multiple of 3", len(input.Topology))
	}

	// vertices, cameras and frame_indices must agree on the frame count.
	frames := len(input.Indices)
	if got, want := len(input.Vertices), frames*input.VertexCount*3; got != want {
		return result, fmt.Errorf("vertices hold %d values, want %d for %d frames", got, want, frames)
	}
	if got, want := len(input.Cameras), frames*input.CameraDim; got != want {
		return result, fmt.Errorf("cameras hold %d values, want %d for %d frames", got, want, frames)
	}

	indices := make([]int32, frames)
	for i, idx := range input.Indices {
		indices[i] = int32(idx)
	}

	triangles := len(input.Topology) / 3
	shapes := map[string][]int{
		EntryVertices:     {frames, input.VertexCount, 3},
		EntryFaces:        {triangles, 3},
		EntryCameras:      {frames, input.CameraDim},
		EntryFrameIndices: {frames},
	}

	w := npz.NewWriter()
	if err := w.Float32(EntryVertices, shapes[EntryVertices], input.Vertices); err != nil {
		return result, fmt.Errorf("pack vertices: %w", err)
	}
	if err := w.Int32(EntryFaces, shapes[EntryFaces], input.Topology); err != nil {
		return result, fmt.Errorf("pack faces: %w", err)
	}
	if err := w.Float32(EntryCameras, shapes[EntryCameras], input.Cameras); err != nil {
		return result, fmt.Errorf("pack cameras: %w", err)
	}
	if err := w.Int32(EntryFrameIndices, shapes[EntryFrameIndices], indices); err != nil {
		return result, fmt.Errorf("pack frame indices: %w", err)
	}

	data, err := w.Bytes()
	if err != nil {
		return result, fmt.Errorf("finalize archive: %w", err)
	}

	result.Data = data
	result.FrameCount = frames
	result.Shapes = shapes

	s.logger.Debug("Packed %d frames into %d bytes", frames, len(data))
	return result, nil
}

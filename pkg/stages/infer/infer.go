// Package infer implements the mesh inference stage.
package infer

import (
	"context"
	"fmt"
	"time"

	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Stage runs every sampled frame through the reconstruction model.
type Stage struct {
	model    ports.MeshModel
	progress ports.Progress
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new infer stage.
func New(model ports.MeshModel, progress ports.Progress, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		model:    model,
		progress: progress,
		sink:     sink,
		logger:   logger.WithComponent("infer"),
	}
}

// Execute loads the model, fetches the static topology once, and runs one
// forward pass per frame in sampling order. Frames are processed strictly
// sequentially. The model is closed before returning on every path.
func (s *Stage) Execute(ctx context.Context, input pipeline.InferInput) (pipeline.InferResult, error) {
	result := pipeline.InferResult{}

	if len(input.Frames) != len(input.Indices) {
		return result, fmt.Errorf("got %d frames but %d indices", len(input.Frames), len(input.Indices))
	}

	loadStart := time.Now()
	if err := s.model.Load(); err != nil {
		return result, fmt.Errorf("load model: %w", err)
	}
	defer func() {
		s.model.Close()
		s.logger.Debug("Model released")
	}()
	result.LoadMs = int(time.Since(loadStart).Milliseconds())

	spec := s.model.Spec()
	result.VertexCount = spec.VertexCount
	result.CameraDim = spec.CameraDim
	s.logger.Debug("Model loaded in %d ms: %d vertices, %d camera params, %dpx input",
		result.LoadMs, spec.VertexCount, spec.CameraDim, spec.InputSize)

	// The triangulation is static: fetch it once, not per frame.
	result.Topology = s.model.Topology()
	if len(result.Topology)%3 != 0 {
		return result, fmt.Errorf("topology length %d is not a multiple of 3", len(result.Topology))
	}

	vertsPerFrame := spec.VertexCount * 3
	result.Vertices = make([]float32, 0, len(input.Frames)*vertsPerFrame)
	result.Cameras = make([]float32, 0, len(input.Frames)*spec.CameraDim)

	inferStart := time.Now()
	s.progress.Start(len(input.Frames), "Reconstructing")
	defer s.progress.Finish()

	for i, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		mesh, err := s.model.Infer(frame)
		if err != nil {
			return result, fmt.Errorf("infer frame %d: %w", input.Indices[i], err)
		}
		if len(mesh.Vertices) != vertsPerFrame {
			return result, fmt.Errorf("frame %d: expected %d vertex values, got %d",
				input.Indices[i], vertsPerFrame, len(mesh.Vertices))
		}
		if len(mesh.Camera) != spec.CameraDim {
			return result, fmt.Errorf("frame %d: expected %d camera values, got %d",
				input.Indices[i], spec.CameraDim, len(mesh.Camera))
		}

		result.Vertices = append(result.Vertices, mesh.Vertices...)
		result.Cameras = append(result.Cameras, mesh.Camera...)

		// Debug output must not abort the run
		if s.sink.Enabled() {
			s.sink.SaveMeshOverlay(input.Indices[i], frame, mesh)
		}
		s.progress.Increment()
	}
	result.InferMs = int(time.Since(inferStart).Milliseconds())

	s.logger.Debug("Reconstructed %d frames in %d ms", len(input.Frames), result.InferMs)
	return result, nil
}

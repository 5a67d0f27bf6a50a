// Package sample implements the frame sampling stage.
package sample

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Stage decodes a video and retains every stride-th frame.
type Stage struct {
	source ports.VideoSource
	sink   ports.DebugSink
	logger ports.Logger
}

// New creates a new sample stage.
func New(source ports.VideoSource, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		source: source,
		sink:   sink,
		logger: logger.WithComponent("sample"),
	}
}

// Execute decodes the video in order and returns the retained frames
// together with the zero-based index each one had in the original video.
// An opened video with no decodable frames yields empty slices and no error.
func (s *Stage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	result := pipeline.SampleResult{
		Frames:  make([]image.Image, 0),
		Indices: make([]int, 0),
	}

	if input.FPSSample <= 0 {
		return result, fmt.Errorf("fps_sample must be positive, got %d", input.FPSSample)
	}

	stream, err := s.source.Open(input.VideoPath)
	if err != nil {
		return result, fmt.Errorf("open video: %w", err)
	}
	defer stream.Close()

	result.NativeFPS = stream.FPS()
	result.Stride = ComputeStride(result.NativeFPS, input.FPSSample)
	s.logger.Debug("Native rate %.3f fps, retaining every %d frames", result.NativeFPS, result.Stride)

	for idx := 0; ; idx++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		img, ok := stream.ReadFrame()
		if !ok {
			result.TotalDecoded = idx
			break
		}
		if idx%result.Stride != 0 {
			continue
		}
		result.Frames = append(result.Frames, img)
		result.Indices = append(result.Indices, idx)

		// Debug output must not abort the run
		if s.sink.Enabled() {
			s.sink.SaveSampledFrame(idx, img)
		}
	}

	s.logger.Debug("Decoded %d frames, retained %d", result.TotalDecoded, len(result.Frames))
	return result, nil
}

// ComputeStride returns how many source frames to advance per retained
// frame when downsampling nativeFPS to targetFPS. Rounds to the nearest
// integer and never returns less than 1, so a missing or bogus container
// rate keeps every frame instead of dividing by zero.
func ComputeStride(nativeFPS float64, targetFPS int) int {
	if targetFPS <= 0 {
		return 1
	}
	if math.IsNaN(nativeFPS) || math.IsInf(nativeFPS, 0) {
		return 1
	}
	stride := int(math.Round(nativeFPS / float64(targetFPS)))
	if stride < 1 {
		return 1
	}
	return stride
}

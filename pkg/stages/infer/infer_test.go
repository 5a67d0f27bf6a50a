package infer

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/logger"
	"github.com/tejasp2022/handfoundationmodel/pkg/mocks"
	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

func testFrames(n int) ([]image.Image, []int) {
	frames := make([]image.Image, n)
	indices := make([]int, n)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 8, 8))
		indices[i] = i * 15
	}
	return frames, indices
}

func TestStage_Execute(t *testing.T) {
	model := &mocks.MeshModel{}
	progress := &mocks.Progress{}
	stage := New(model, progress, mocks.NewDebugSink(false), logger.NewNoop())

	frames, indices := testFrames(3)
	result, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.LoadCalls != 1 {
		t.Errorf("expected 1 load call, got %d", model.LoadCalls)
	}
	if model.CloseCalls != 1 {
		t.Errorf("expected 1 close call, got %d", model.CloseCalls)
	}
	if model.TopologyCalls != 1 {
		t.Errorf("expected topology fetched once, got %d calls", model.TopologyCalls)
	}
	if model.InferCalls != 3 {
		t.Errorf("expected 3 infer calls, got %d", model.InferCalls)
	}

	spec := mocks.DefaultSpec
	if result.VertexCount != spec.VertexCount {
		t.Errorf("expected vertex count %d, got %d", spec.VertexCount, result.VertexCount)
	}
	if result.CameraDim != spec.CameraDim {
		t.Errorf("expected camera dim %d, got %d", spec.CameraDim, result.CameraDim)
	}
	if got := len(result.Vertices); got != 3*spec.VertexCount*3 {
		t.Fatalf("expected %d vertex values, got %d", 3*spec.VertexCount*3, got)
	}
	if got := len(result.Cameras); got != 3*spec.CameraDim {
		t.Fatalf("expected %d camera values, got %d", 3*spec.CameraDim, got)
	}
	if result.FrameCount() != 3 {
		t.Errorf("expected frame count 3, got %d", result.FrameCount())
	}

	// The mock tags every value with the call ordinal, so order must hold.
	perFrame := spec.VertexCount * 3
	for f := 0; f < 3; f++ {
		for i := 0; i < perFrame; i++ {
			if got := result.Vertices[f*perFrame+i]; got != float32(f) {
				t.Fatalf("frame %d vertex value %d: expected %v, got %v", f, i, float32(f), got)
			}
		}
		for i := 0; i < spec.CameraDim; i++ {
			if got := result.Cameras[f*spec.CameraDim+i]; got != float32(f) {
				t.Fatalf("frame %d camera value %d: expected %v, got %v", f, i, float32(f), got)
			}
		}
	}

	if progress.StartCalls != 1 || progress.StartTotal != 3 {
		t.Errorf("expected progress started once with total 3, got %d calls with total %d",
			progress.StartCalls, progress.StartTotal)
	}
	if progress.Increments != 3 {
		t.Errorf("expected 3 progress increments, got %d", progress.Increments)
	}
	if progress.FinishCalls != 1 {
		t.Errorf("expected progress finished once, got %d", progress.FinishCalls)
	}
}

func TestStage_Execute_TopologyStableAcrossRuns(t *testing.T) {
	run := func() []int32 {
		model := &mocks.MeshModel{}
		stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())
		frames, indices := testFrames(2)
		result, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result.Topology
	}

	first := run()
	second := run()
	if len(first) != len(second) || len(first) == 0 {
		t.Fatalf("expected stable non-empty topology, got %d and %d entries", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("topology entry %d: expected %d, got %d", i, first[i], second[i])
		}
	}
}

func TestStage_Execute_EmptyFrames(t *testing.T) {
	model := &mocks.MeshModel{}
	progress := &mocks.Progress{}
	stage := New(model, progress, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.InferInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The model still loads so the archive knows its dimensions.
	if model.LoadCalls != 1 {
		t.Errorf("expected model loaded, got %d load calls", model.LoadCalls)
	}
	if model.InferCalls != 0 {
		t.Errorf("expected no infer calls, got %d", model.InferCalls)
	}
	if result.VertexCount != mocks.DefaultSpec.VertexCount {
		t.Errorf("expected vertex count %d, got %d", mocks.DefaultSpec.VertexCount, result.VertexCount)
	}
	if len(result.Vertices) != 0 || len(result.Cameras) != 0 {
		t.Errorf("expected empty arrays, got %d vertices and %d cameras",
			len(result.Vertices), len(result.Cameras))
	}
	if len(result.Topology) == 0 {
		t.Error("expected topology even with no frames")
	}
	if model.CloseCalls != 1 {
		t.Errorf("expected model closed, got %d close calls", model.CloseCalls)
	}
}

func TestStage_Execute_LoadError(t *testing.T) {
	model := &mocks.MeshModel{
		LoadFunc: func() error {
			return errors.New("checkpoint not found: _DATA/hamer_ckpts/checkpoints/hamer.onnx")
		},
	}
	stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())

	frames, indices := testFrames(1)
	_, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "load model") {
		t.Errorf("expected load model error, got %q", err.Error())
	}
	if model.InferCalls != 0 {
		t.Errorf("expected no infer calls after load failure, got %d", model.InferCalls)
	}
	if model.CloseCalls != 0 {
		t.Errorf("expected no close call after load failure, got %d", model.CloseCalls)
	}
}

func TestStage_Execute_InferError(t *testing.T) {
	calls := 0
	model := &mocks.MeshModel{
		InferFunc: func(img image.Image) (ports.Mesh, error) {
			calls++
			if calls == 2 {
				return ports.Mesh{}, errors.New("forward pass failed")
			}
			return ports.Mesh{
				Vertices: make([]float32, mocks.DefaultSpec.VertexCount*3),
				Camera:   make([]float32, mocks.DefaultSpec.CameraDim),
			}, nil
		},
	}
	stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())

	frames, indices := testFrames(3)
	_, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "infer frame 15") {
		t.Errorf("expected error naming original frame 15, got %q", err.Error())
	}
	if model.CloseCalls != 1 {
		t.Errorf("expected model closed on failure, got %d close calls", model.CloseCalls)
	}
}

func TestStage_Execute_DimensionDrift(t *testing.T) {
	model := &mocks.MeshModel{
		InferFunc: func(img image.Image) (ports.Mesh, error) {
			return ports.Mesh{
				Vertices: make([]float32, 7), // not VertexCount*3
				Camera:   make([]float32, mocks.DefaultSpec.CameraDim),
			}, nil
		},
	}
	stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())

	frames, indices := testFrames(1)
	_, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "vertex values") {
		t.Errorf("expected vertex dimension error, got %q", err.Error())
	}
}

func TestStage_Execute_MismatchedInput(t *testing.T) {
	model := &mocks.MeshModel{}
	stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())

	frames, _ := testFrames(2)
	_, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: []int{0}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if model.LoadCalls != 0 {
		t.Errorf("expected no load on mismatched input, got %d", model.LoadCalls)
	}
}

func TestStage_Execute_WithDebugSink(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := New(&mocks.MeshModel{}, &mocks.Progress{}, sink, logger.NewNoop())

	frames, indices := testFrames(2)
	_, err := stage.Execute(context.Background(), pipeline.InferInput{Frames: frames, Indices: indices})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.Overlays) != 2 {
		t.Fatalf("expected 2 overlays, got %d", len(sink.Overlays))
	}
	for _, idx := range indices {
		if _, ok := sink.Overlays[idx]; !ok {
			t.Errorf("expected overlay for frame %d", idx)
		}
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	model := &mocks.MeshModel{}
	stage := New(model, &mocks.Progress{}, mocks.NewDebugSink(false), logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames, indices := testFrames(2)
	_, err := stage.Execute(ctx, pipeline.InferInput{Frames: frames, Indices: indices})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if model.CloseCalls != 1 {
		t.Errorf("expected model closed on cancellation, got %d close calls", model.CloseCalls)
	}
}

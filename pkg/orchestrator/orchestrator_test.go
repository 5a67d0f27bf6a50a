package orchestrator

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/logger"
	"github.com/tejasp2022/handfoundationmodel/pkg/mocks"
	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
)

// mockSampleStage is a mock for the sample stage.
type mockSampleStage struct {
	result pipeline.SampleResult
	err    error
	calls  int
}

func (m *mockSampleStage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	m.calls++
	if m.err != nil {
		return pipeline.SampleResult{}, m.err
	}
	return m.result, nil
}

// mockInferStage is a mock for the infer stage.
type mockInferStage struct {
	result pipeline.InferResult
	err    error
	calls  int
	input  pipeline.InferInput
}

func (m *mockInferStage) Execute(ctx context.Context, input pipeline.InferInput) (pipeline.InferResult, error) {
	m.calls++
	m.input = input
	if m.err != nil {
		return pipeline.InferResult{}, m.err
	}
	return m.result, nil
}

// mockArchiveStage is a mock for the archive stage.
type mockArchiveStage struct {
	result pipeline.ArchiveResult
	err    error
	input  pipeline.ArchiveInput
}

func (m *mockArchiveStage) Execute(ctx context.Context, input pipeline.ArchiveInput) (pipeline.ArchiveResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.ArchiveResult{}, m.err
	}
	return m.result, nil
}

func sampleFixture() pipeline.SampleResult {
	frames := make([]image.Image, 2)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}
	return pipeline.SampleResult{
		Frames:       frames,
		Indices:      []int{0, 15},
		NativeFPS:    30.0,
		Stride:       15,
		TotalDecoded: 30,
	}
}

func inferFixture() pipeline.InferResult {
	return pipeline.InferResult{
		Vertices:    make([]float32, 2*4*3),
		Cameras:     make([]float32, 2*3),
		Topology:    []int32{0, 1, 2, 1, 3, 2},
		VertexCount: 4,
		CameraDim:   3,
		LoadMs:      120,
		InferMs:     80,
	}
}

func TestOrchestrator_Run(t *testing.T) {
	sampleStage := &mockSampleStage{result: sampleFixture()}
	inferStage := &mockInferStage{result: inferFixture()}
	archiveStage := &mockArchiveStage{
		result: pipeline.ArchiveResult{Data: []byte("npz-bytes"), FrameCount: 2},
	}

	mockFS := mocks.NewFileSystem()
	mockSink := mocks.NewDebugSink(false)

	orch := New(sampleStage, inferStage, archiveStage, mockFS, mockSink, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "/videos/clip.mp4"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "results/clip_meshes.npz"
	if result.ArchivePath != wantPath {
		t.Errorf("expected archive path %q, got %q", wantPath, result.ArchivePath)
	}
	data, ok := mockFS.GetFile(wantPath)
	if !ok {
		t.Fatal("expected archive file to be written")
	}
	if string(data) != "npz-bytes" {
		t.Errorf("expected archive bytes to be written verbatim, got %q", data)
	}
	if dirs := mockFS.GetDirs(); !dirs["results"] {
		t.Error("expected output directory to be created")
	}

	// The infer stage must see the sampled frames, and the archive stage
	// must see the sampled indices next to the inferred arrays.
	if len(inferStage.input.Frames) != 2 || len(inferStage.input.Indices) != 2 {
		t.Errorf("expected infer input with 2 frames and indices, got %d and %d",
			len(inferStage.input.Frames), len(inferStage.input.Indices))
	}
	if len(archiveStage.input.Indices) != 2 || archiveStage.input.Indices[1] != 15 {
		t.Errorf("expected archive indices [0 15], got %v", archiveStage.input.Indices)
	}
	if archiveStage.input.VertexCount != 4 || archiveStage.input.CameraDim != 3 {
		t.Errorf("expected dims carried into archive input, got V=%d C=%d",
			archiveStage.input.VertexCount, archiveStage.input.CameraDim)
	}

	if result.FrameCount != 2 {
		t.Errorf("expected frame count 2, got %d", result.FrameCount)
	}
	if result.Stride != 15 || result.NativeFPS != 30.0 {
		t.Errorf("expected stride 15 at 30fps, got %d at %v", result.Stride, result.NativeFPS)
	}
	if result.TriangleCount != 2 {
		t.Errorf("expected 2 triangles, got %d", result.TriangleCount)
	}
	if result.ArchiveSize != int64(len("npz-bytes")) {
		t.Errorf("expected archive size %d, got %d", len("npz-bytes"), result.ArchiveSize)
	}
}

func TestOrchestrator_Run_EmptyVideo(t *testing.T) {
	sampleStage := &mockSampleStage{
		result: pipeline.SampleResult{NativeFPS: 30.0, Stride: 15, TotalDecoded: 0},
	}

	inferCalled := false
	inferStage := &mockInferStage{result: pipeline.InferResult{
		Topology:    []int32{0, 1, 2, 1, 3, 2},
		VertexCount: 4,
		CameraDim:   3,
		LoadMs:      120,
	}}
	// Wrap to track calls
	wrappedInferStage := pipeline.StageFunc[pipeline.InferInput, pipeline.InferResult](
		func(ctx context.Context, input pipeline.InferInput) (pipeline.InferResult, error) {
			inferCalled = true
			return inferStage.Execute(ctx, input)
		},
	)

	archiveStage := &mockArchiveStage{
		result: pipeline.ArchiveResult{Data: []byte("empty-npz"), FrameCount: 0},
	}

	mockFS := mocks.NewFileSystem()
	mockSink := mocks.NewDebugSink(true)

	orch := New(sampleStage, wrappedInferStage, archiveStage, mockFS, mockSink, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "empty.mp4"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A frameless video still loads the model and still produces an archive.
	if !inferCalled {
		t.Error("expected infer stage to run even with zero frames")
	}
	if result.FrameCount != 0 {
		t.Errorf("expected frame count 0, got %d", result.FrameCount)
	}
	if _, ok := mockFS.GetFile("results/empty_meshes.npz"); !ok {
		t.Error("expected empty archive to be written")
	}
	if len(mockSink.SheetFrames) != 0 {
		t.Errorf("expected no contact sheet for a frameless run, got %d frames", len(mockSink.SheetFrames))
	}
}

func TestOrchestrator_Run_SampleFailureSkipsModel(t *testing.T) {
	sampleStage := &mockSampleStage{err: errors.New("cannot open video /missing.mp4")}
	inferStage := &mockInferStage{result: inferFixture()}
	archiveStage := &mockArchiveStage{}

	orch := New(sampleStage, inferStage, archiveStage,
		mocks.NewFileSystem(), mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "/missing.mp4"

	_, err := orch.Run(context.Background(), config)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "sample stage") {
		t.Errorf("expected sample stage error, got %q", err.Error())
	}
	// Sampling precedes model work, so the model must never be touched.
	if inferStage.calls != 0 {
		t.Errorf("expected infer stage untouched after sample failure, got %d calls", inferStage.calls)
	}
}

func TestOrchestrator_Run_StageFailures(t *testing.T) {
	tests := []struct {
		name    string
		infer   error
		archive error
		want    string
	}{
		{"infer failure", errors.New("load model: no checkpoint"), nil, "infer stage"},
		{"archive failure", nil, errors.New("vertices hold 3 values"), "archive stage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampleStage := &mockSampleStage{result: sampleFixture()}
			inferStage := &mockInferStage{result: inferFixture(), err: tt.infer}
			archiveStage := &mockArchiveStage{
				result: pipeline.ArchiveResult{Data: []byte("x")},
				err:    tt.archive,
			}

			orch := New(sampleStage, inferStage, archiveStage,
				mocks.NewFileSystem(), mocks.NewDebugSink(false), logger.NewNoop())

			config := DefaultConfig()
			config.VideoPath = "clip.mp4"

			_, err := orch.Run(context.Background(), config)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestOrchestrator_Run_WriteFailure(t *testing.T) {
	sampleStage := &mockSampleStage{result: sampleFixture()}
	inferStage := &mockInferStage{result: inferFixture()}
	archiveStage := &mockArchiveStage{
		result: pipeline.ArchiveResult{Data: []byte("npz-bytes"), FrameCount: 2},
	}

	mockFS := mocks.NewFileSystem()
	mockFS.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	orch := New(sampleStage, inferStage, archiveStage,
		mockFS, mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "clip.mp4"

	_, err := orch.Run(context.Background(), config)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "write archive") {
		t.Errorf("expected write archive error, got %q", err.Error())
	}
}

func TestOrchestrator_Run_MkdirFailure(t *testing.T) {
	sampleStage := &mockSampleStage{result: sampleFixture()}
	inferStage := &mockInferStage{result: inferFixture()}
	archiveStage := &mockArchiveStage{}

	mockFS := mocks.NewFileSystem()
	mockFS.MkdirAllFunc = func(path string) error {
		return errors.New("permission denied")
	}

	orch := New(sampleStage, inferStage, archiveStage,
		mockFS, mocks.NewDebugSink(false), logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "clip.mp4"

	_, err := orch.Run(context.Background(), config)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "create output directory") {
		t.Errorf("expected mkdir error, got %q", err.Error())
	}
	if inferStage.calls != 0 {
		t.Errorf("expected no model work after mkdir failure, got %d calls", inferStage.calls)
	}
}

func TestOrchestrator_Run_WithDebugSink(t *testing.T) {
	sampleStage := &mockSampleStage{result: sampleFixture()}
	inferStage := &mockInferStage{result: inferFixture()}
	archiveStage := &mockArchiveStage{
		result: pipeline.ArchiveResult{Data: []byte("npz-bytes"), FrameCount: 2},
	}

	mockSink := mocks.NewDebugSink(true)
	orch := New(sampleStage, inferStage, archiveStage,
		mocks.NewFileSystem(), mockSink, logger.NewNoop())

	config := DefaultConfig()
	config.VideoPath = "clip.mp4"

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mockSink.RunJSON) == 0 {
		t.Error("expected run JSON to be saved")
	}
	if len(mockSink.SheetFrames) != 2 {
		t.Errorf("expected contact sheet with 2 frames, got %d", len(mockSink.SheetFrames))
	}
	if len(mockSink.SheetIndices) != 2 || mockSink.SheetIndices[1] != 15 {
		t.Errorf("expected contact sheet indices [0 15], got %v", mockSink.SheetIndices)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.FPSSample != 2 {
		t.Errorf("expected default fps_sample 2, got %d", config.FPSSample)
	}
	if config.OutputDir != "results" {
		t.Errorf("expected default output dir results, got %q", config.OutputDir)
	}
	if config.Device != "cuda" {
		t.Errorf("expected default device cuda, got %q", config.Device)
	}
	if config.CheckpointPath != DefaultCheckpointPath {
		t.Errorf("expected checkpoint path %q, got %q", DefaultCheckpointPath, config.CheckpointPath)
	}
}

func TestConfig_ArchivePath(t *testing.T) {
	tests := []struct {
		name      string
		videoPath string
		outputDir string
		want      string
	}{
		{"absolute path", "/videos/clip.mp4", "results", "results/clip_meshes.npz"},
		{"relative path", "take_01.mov", "out", "out/take_01_meshes.npz"},
		{"no extension", "raw", "results", "results/raw_meshes.npz"},
		{"dotted name", "a.b.c.mp4", "results", "results/a.b.c_meshes.npz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Config{VideoPath: tt.videoPath, OutputDir: tt.outputDir}
			if got := config.ArchivePath(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/tejasp2022/handfoundationmodel/pkg/pipeline"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// ArchiveSuffix is appended to the video basename to form the archive name.
const ArchiveSuffix = "_meshes.npz"

// DefaultCheckpointPath is the fixed location of the pretrained checkpoint.
// It is deliberately not exposed as a CLI flag; deployments that relocate
// the checkpoint do so through the config file.
const DefaultCheckpointPath = "_DATA/hamer_ckpts/checkpoints/hamer.onnx"

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	VideoPath string

	// Sampling
	FPSSample int // Target sampling rate in frames per second

	// Output
	OutputDir string

	// Model
	Device         string // Compute device: cuda or cpu
	CheckpointPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPSSample:      2,
		OutputDir:      "results",
		Device:         "cuda",
		CheckpointPath: DefaultCheckpointPath,
	}
}

// ArchivePath returns where the mesh archive for this config is written:
// <output_dir>/<video_basename>_meshes.npz.
func (c Config) ArchivePath() string {
	base := strings.TrimSuffix(filepath.Base(c.VideoPath), filepath.Ext(c.VideoPath))
	return filepath.Join(c.OutputDir, base+ArchiveSuffix)
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	sampleStage  pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult]
	inferStage   pipeline.Stage[pipeline.InferInput, pipeline.InferResult]
	archiveStage pipeline.Stage[pipeline.ArchiveInput, pipeline.ArchiveResult]
	fs           ports.FileSystem
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult],
	inferStage pipeline.Stage[pipeline.InferInput, pipeline.InferResult],
	archiveStage pipeline.Stage[pipeline.ArchiveInput, pipeline.ArchiveResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sampleStage:  sampleStage,
		inferStage:   inferStage,
		archiveStage: archiveStage,
		fs:           fs,
		sink:         sink,
		logger:       logger,
	}
}

// Run executes the complete extraction pipeline. Every stage error aborts
// the run; nothing is retried. The archive is written in a single step, so
// a failed run leaves no partial output behind.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	// 1. Sample frames
	o.logger.Info(l10n.F("Sampling frames from %s at %d fps", config.VideoPath, config.FPSSample))
	sampled, err := o.sampleStage.Execute(ctx, o.buildSampleInput(config))
	if err != nil {
		o.logger.Error(l10n.F("Failed to sample frames: %s", err))
		return RunResult{}, fmt.Errorf("sample stage: %w", err)
	}
	o.logger.Info(l10n.F("Sampled %d of %d frames (stride %d)",
		len(sampled.Frames), sampled.TotalDecoded, sampled.Stride))

	// Debug output never aborts the run
	if o.sink.Enabled() && len(sampled.Frames) > 0 {
		o.sink.SaveContactSheet(sampled.Frames, sampled.Indices)
	}

	// 2. Ensure the output directory exists before the expensive work
	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		o.logger.Error(l10n.F("Failed to create output directory: %s", err))
		return RunResult{}, fmt.Errorf("create output directory: %w", err)
	}

	// 3. Reconstruct meshes
	o.logger.Info(l10n.T("Loading model and reconstructing meshes"))
	inferred, err := o.inferStage.Execute(ctx, o.buildInferInput(sampled))
	if err != nil {
		o.logger.Error(l10n.F("Failed to reconstruct meshes: %s", err))
		return RunResult{}, fmt.Errorf("infer stage: %w", err)
	}
	o.logger.Info(l10n.F("Reconstructed %d frames in %d ms", inferred.FrameCount(), inferred.InferMs))

	// 4. Pack the archive
	archived, err := o.archiveStage.Execute(ctx, o.buildArchiveInput(sampled, inferred))
	if err != nil {
		o.logger.Error(l10n.F("Failed to pack archive: %s", err))
		return RunResult{}, fmt.Errorf("archive stage: %w", err)
	}

	// 5. Write the archive
	archivePath := config.ArchivePath()
	if err := o.fs.WriteFile(archivePath, archived.Data); err != nil {
		o.logger.Error(l10n.F("Failed to write archive: %s", err))
		return RunResult{}, fmt.Errorf("write archive: %w", err)
	}
	o.logger.Info(l10n.F("Saved meshes for %d frames to %s", archived.FrameCount, archivePath))

	result := RunResult{
		VideoPath:     config.VideoPath,
		NativeFPS:     sampled.NativeFPS,
		FPSSample:     config.FPSSample,
		Stride:        sampled.Stride,
		TotalDecoded:  sampled.TotalDecoded,
		FrameCount:    archived.FrameCount,
		VertexCount:   inferred.VertexCount,
		CameraDim:     inferred.CameraDim,
		TriangleCount: len(inferred.Topology) / 3,
		ModelLoadMs:   inferred.LoadMs,
		InferMs:       inferred.InferMs,
		Device:        config.Device,
		ArchivePath:   archivePath,
		ArchiveSize:   int64(len(archived.Data)),
	}

	// Save run debug output
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			o.sink.SaveRunJSON(data)
		}
	}

	return result, nil
}

func (o *Orchestrator) buildSampleInput(config Config) pipeline.SampleInput {
	return pipeline.SampleInput{
		VideoPath: config.VideoPath,
		FPSSample: config.FPSSample,
	}
}

func (o *Orchestrator) buildInferInput(sampled pipeline.SampleResult) pipeline.InferInput {
	return pipeline.InferInput{
		Frames:  sampled.Frames,
		Indices: sampled.Indices,
	}
}

func (o *Orchestrator) buildArchiveInput(sampled pipeline.SampleResult, inferred pipeline.InferResult) pipeline.ArchiveInput {
	return pipeline.ArchiveInput{
		Vertices:    inferred.Vertices,
		Cameras:     inferred.Cameras,
		Topology:    inferred.Topology,
		Indices:     sampled.Indices,
		VertexCount: inferred.VertexCount,
		CameraDim:   inferred.CameraDim,
	}
}

// RunResult contains the results of an extraction run for summary generation.
type RunResult struct {
	// Input information
	VideoPath string
	NativeFPS float64
	FPSSample int

	// Sampling information
	Stride       int
	TotalDecoded int
	FrameCount   int // frames retained and reconstructed

	// Mesh information
	VertexCount   int
	CameraDim     int
	TriangleCount int

	// Timing information
	ModelLoadMs int
	InferMs     int
	Device      string

	// Output information
	ArchivePath string
	ArchiveSize int64
}

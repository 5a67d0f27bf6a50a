// Package main provides the CLI entry point for handmesh.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/filesink"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/ggrenderer"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/gocvmodel"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/gocvsource"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/logger"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/mp4probe"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/nullsink"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/osfilesystem"
	"github.com/tejasp2022/handfoundationmodel/pkg/adapters/progress"
	"github.com/tejasp2022/handfoundationmodel/pkg/config"
	"github.com/tejasp2022/handfoundationmodel/pkg/orchestrator"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
	"github.com/tejasp2022/handfoundationmodel/pkg/stages/archive"
	"github.com/tejasp2022/handfoundationmodel/pkg/stages/infer"
	"github.com/tejasp2022/handfoundationmodel/pkg/stages/sample"
	"github.com/tejasp2022/handfoundationmodel/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Extract ExtractCmd `cmd:"" default:"withargs" help:"Extract 3D hand meshes from a video into an .npz archive."`
	Probe   ProbeCmd   `cmd:"" help:"Inspect a video container without decoding frames."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ExtractCmd defines the extract subcommand.
type ExtractCmd struct {
	// Required arguments
	VideoPath string `name:"video_path" required:"" help:"Path to the input video file."`

	// Output options (override config file)
	OutputDir *string `name:"output_dir" help:"Directory for the mesh archive (default: results)."`

	// Sampling options
	FPSSample *int `name:"fps_sample" help:"Target sampling rate in frames per second (default: 2)."`

	// Model options
	Device *string `help:"Compute device for inference (default: cuda)."`

	// Config file
	Config string `short:"c" help:"Path to a YAML config file."`

	// Summary output
	Summary string `help:"Output execution summary to file (Markdown format)."`

	// Debug options
	Debug    bool    `short:"d" help:"Enable debug output."`
	DebugDir *string `help:"Directory for debug output (default: ./debug)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Path      string `arg:"" help:"Video file to inspect."`
	FPSSample int    `name:"fps_sample" default:"2" help:"Target rate for the reported sampling plan."`
	JSON      bool   `help:"Print metadata as JSON."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("handmesh"),
		kong.Description("Extract 3D hand mesh sequences from videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the extract command.
func (cmd *ExtractCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	// Create logger
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	source := gocvsource.New()
	model := gocvmodel.New(cfg.CheckpointPath, cfg.Device, fs)

	var prog ports.Progress
	if cmd.Quiet {
		prog = progress.NewNoop()
	} else {
		prog = progress.NewConsole()
	}

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	sampleStage := sample.New(source, sink, log)
	inferStage := infer.New(model, prog, sink, log)
	archiveStage := archive.New(log)

	// Create orchestrator
	orch := orchestrator.New(sampleStage, inferStage, archiveStage, fs, sink, log)

	// Run pipeline
	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	log.Info(l10n.T("Extraction completed successfully"))

	if cmd.Summary != "" {
		if err := writeSummary(cmd.Summary, cfg, result, fs); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err))
			return err
		}
		log.Info(l10n.F("Summary saved to %s", cmd.Summary))
	}

	return nil
}

// buildConfig creates a Config from defaults, config file and CLI overrides.
func (cmd *ExtractCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()

	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cmd.Config, err)
		}
		cfg = loaded
	}

	cfg.VideoPath = cmd.VideoPath

	// Explicit flags win over the config file
	if cmd.OutputDir != nil {
		cfg.OutputDir = *cmd.OutputDir
	}
	if cmd.FPSSample != nil {
		cfg.FPSSample = *cmd.FPSSample
	}
	if cmd.Device != nil {
		cfg.Device = *cmd.Device
	}
	if cmd.Debug {
		cfg.Debug = true
	}
	if cmd.DebugDir != nil {
		cfg.DebugDir = *cmd.DebugDir
	}

	return cfg, nil
}

// writeSummary renders the run result as Markdown and writes it to path.
func writeSummary(path string, cfg config.Config, result orchestrator.RunResult, fs ports.FileSystem) error {
	summary := summarizer.NewBuilder().
		WithSource(result.VideoPath, result.NativeFPS).
		WithSampling(result.FPSSample, result.Stride, result.FrameCount, result.TotalDecoded).
		WithMesh(summarizer.MeshInfo{
			FrameCount:    result.FrameCount,
			VertexCount:   result.VertexCount,
			TriangleCount: result.TriangleCount,
			CameraDim:     result.CameraDim,
		}).
		WithModel(summarizer.ModelInfo{
			Device:     result.Device,
			Checkpoint: cfg.CheckpointPath,
			LoadMs:     result.ModelLoadMs,
			InferMs:    result.InferMs,
		}).
		WithArchive(result.ArchivePath, result.ArchiveSize).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	info, err := mp4probe.New().Probe(cmd.Path)
	if err != nil {
		return err
	}

	stride := sample.ComputeStride(info.FPS, cmd.FPSSample)
	kept := (info.FrameCount + stride - 1) / stride

	if cmd.JSON {
		data, err := json.MarshalIndent(struct {
			*ports.VideoInfo
			Stride     int
			FramesKept int
		}{info, stride, kept}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(l10n.F("Video: %s", info.Path))
	fmt.Println(l10n.F("Codec: %s", info.Codec))
	fmt.Println(l10n.F("Dimensions: %dx%d", info.Width, info.Height))
	fmt.Println(l10n.F("Duration: %.2f s", info.DurationSec))
	fmt.Println(l10n.F("Frames: %d", info.FrameCount))
	fmt.Println(l10n.F("Declared rate: %.3f fps", info.FPS))
	fmt.Println(l10n.F("Stride at %d fps: %d", cmd.FPSSample, stride))
	fmt.Println(l10n.F("Frames kept: %d", kept))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("handmesh (Go) version %s", version))
	return nil
}

package ports

// VideoInfo describes container-level metadata for a video file.
type VideoInfo struct {
	Path        string
	DurationSec float64
	FrameCount  int     // 0 when the container does not declare it
	FPS         float64 // declared or derived frame rate, 0 when unknown
	Width       int
	Height      int
	Codec       string
}

// VideoProber reads container metadata without decoding any frames.
type VideoProber interface {
	// Probe extracts metadata from the video at path.
	Probe(path string) (*VideoInfo, error)
}

// Package ports defines interfaces for external dependencies.
package ports

import (
	"image"
)

// ModelSpec describes the fixed tensor geometry of a loaded model.
type ModelSpec struct {
	InputSize   int // square input edge length in pixels
	VertexCount int // vertices per reconstructed mesh
	CameraDim   int // camera parameters per frame
}

// Mesh is the reconstruction result for a single frame.
type Mesh struct {
	Vertices []float32 // flat xyz triples, length VertexCount*3
	Camera   []float32 // weak-perspective camera, length CameraDim
}

// MeshModel abstracts a pretrained hand-mesh reconstruction network.
//
// The lifecycle is Load once, Infer per frame, Close once. Construction
// is cheap; Load performs the expensive checkpoint read and device
// binding so callers control when the failure can happen.
type MeshModel interface {
	// Load reads the pretrained checkpoint, binds the compute device and
	// switches the network to inference mode. Must be called before any
	// other method. A missing checkpoint or unknown device is fatal here.
	Load() error

	// Spec returns the tensor geometry. Valid after Load.
	Spec() ModelSpec

	// Topology returns the static triangle index list shared by every
	// mesh the model produces, as flat index triples of length
	// TriangleCount*3. Valid after Load; identical across frames and
	// runs. Callers must not mutate the returned slice.
	Topology() []int32

	// Infer runs one forward pass over a single RGB frame and returns
	// the reconstructed mesh in host memory. The frame is resized and
	// normalized internally to the model's input geometry.
	Infer(img image.Image) (Mesh, error)

	// Close releases network and device resources.
	Close() error
}

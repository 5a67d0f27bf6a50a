package mocks

import (
	"image"

	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// MeshModel is a mock implementation of ports.MeshModel.
//
// The default Infer fills every vertex and camera value with the ordinal
// of the call, so tests can verify that results keep frame order.
type MeshModel struct {
	LoadFunc     func() error
	SpecFunc     func() ports.ModelSpec
	TopologyFunc func() []int32
	InferFunc    func(img image.Image) (ports.Mesh, error)
	CloseFunc    func() error

	// Recorded calls for verification
	LoadCalls     int
	TopologyCalls int
	InferCalls    int
	CloseCalls    int
}

// DefaultSpec is the tensor geometry mock models report unless overridden.
var DefaultSpec = ports.ModelSpec{
	InputSize:   256,
	VertexCount: 4,
	CameraDim:   3,
}

func (m *MeshModel) Load() error {
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return nil
}

func (m *MeshModel) Spec() ports.ModelSpec {
	if m.SpecFunc != nil {
		return m.SpecFunc()
	}
	return DefaultSpec
}

func (m *MeshModel) Topology() []int32 {
	m.TopologyCalls++
	if m.TopologyFunc != nil {
		return m.TopologyFunc()
	}
	return []int32{0, 1, 2, 1, 3, 2}
}

func (m *MeshModel) Infer(img image.Image) (ports.Mesh, error) {
	m.InferCalls++
	if m.InferFunc != nil {
		return m.InferFunc(img)
	}
	spec := m.Spec()
	ordinal := float32(m.InferCalls - 1)
	mesh := ports.Mesh{
		Vertices: make([]float32, spec.VertexCount*3),
		Camera:   make([]float32, spec.CameraDim),
	}
	for i := range mesh.Vertices {
		mesh.Vertices[i] = ordinal
	}
	for i := range mesh.Camera {
		mesh.Camera[i] = ordinal
	}
	return mesh, nil
}

func (m *MeshModel) Close() error {
	m.CloseCalls++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.MeshModel = (*MeshModel)(nil)

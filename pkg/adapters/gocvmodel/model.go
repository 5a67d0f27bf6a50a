// Package gocvmodel runs HaMeR hand reconstruction through OpenCV's DNN module.
package gocvmodel

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"

	"github.com/kshedden/gonpy"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
	"gocv.io/x/gocv"
)

const (
	// Side length of the square input HaMeR was trained on.
	inputSize = 256

	// Weak-perspective camera parameters [s, tx, ty].
	cameraDim = 3

	// facesSidecar holds the MANO triangle list exported alongside the
	// checkpoint. The graph itself only outputs per-frame tensors.
	facesSidecar = "hamer_faces.npy"
)

// Output tensor names accepted for the vertex array. Exports differ on
// which one they carry, so both are tried once at load time.
var vertexOutputs = []string{"vertices", "pred_vertices"}

// cameraOutput is the tensor name of the weak-perspective camera.
const cameraOutput = "pred_cam"

// Model implements ports.MeshModel on OpenCV's DNN runtime.
type Model struct {
	checkpointPath string
	device         string
	fs             ports.FileSystem

	net         gocv.Net
	loaded      bool
	vertexName  string
	topology    []int32
	vertexCount int
}

// New creates a Model that reads weights from checkpointPath.
// Device selects the DNN backend, "cuda" or "cpu".
func New(checkpointPath, device string, fs ports.FileSystem) *Model {
	return &Model{
		checkpointPath: checkpointPath,
		device:         device,
		fs:             fs,
	}
}

// Load reads the network and the triangle sidecar and binds the
// requested execution device.
func (m *Model) Load() error {
	backend, target, err := resolveDevice(m.device)
	if err != nil {
		return err
	}

	exists, err := m.fs.Exists(m.checkpointPath)
	if err != nil {
		return fmt.Errorf("stat checkpoint: %w", err)
	}
	if !exists {
		return fmt.Errorf("checkpoint not found at %s, download the HaMeR ONNX export first", m.checkpointPath)
	}

	topology, err := m.loadTopology()
	if err != nil {
		return err
	}

	net := gocv.ReadNetFromONNX(m.checkpointPath)
	if net.Empty() {
		return fmt.Errorf("read checkpoint %s: network is empty", m.checkpointPath)
	}

	if err := net.SetPreferableBackend(backend); err != nil {
		net.Close()
		return fmt.Errorf("bind backend for device %s: %w", m.device, err)
	}
	if err := net.SetPreferableTarget(target); err != nil {
		net.Close()
		return fmt.Errorf("bind target for device %s: %w", m.device, err)
	}

	vertexName, err := resolveOutputs(&net)
	if err != nil {
		net.Close()
		return err
	}

	m.net = net
	m.loaded = true
	m.vertexName = vertexName
	m.topology = topology
	m.vertexCount = maxIndex(topology) + 1
	return nil
}

// Spec returns the model dimensions. Valid after Load.
func (m *Model) Spec() ports.ModelSpec {
	return ports.ModelSpec{
		InputSize:   inputSize,
		VertexCount: m.vertexCount,
		CameraDim:   cameraDim,
	}
}

// Topology returns the MANO triangle list. Valid after Load.
func (m *Model) Topology() []int32 {
	return m.topology
}

// Infer runs one RGB frame through the network.
func (m *Model) Infer(frame image.Image) (ports.Mesh, error) {
	if !m.loaded {
		return ports.Mesh{}, fmt.Errorf("model not loaded")
	}

	// ImageToMatRGB hands back a Mat in OpenCV's BGR layout.
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return ports.Mesh{}, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	// BlobFromImage resizes to the network input, scales to [0,1] and
	// swaps the BGR layout back to the RGB order the export expects.
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSize, inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")

	outputs := m.net.ForwardLayers([]string{m.vertexName, cameraOutput})
	defer closeMats(outputs)
	if len(outputs) != 2 {
		return ports.Mesh{}, fmt.Errorf("expected 2 output tensors, got %d", len(outputs))
	}

	vertices, err := copyFloats(outputs[0])
	if err != nil {
		return ports.Mesh{}, fmt.Errorf("read %s tensor: %w", m.vertexName, err)
	}
	camera, err := copyFloats(outputs[1])
	if err != nil {
		return ports.Mesh{}, fmt.Errorf("read %s tensor: %w", cameraOutput, err)
	}

	return ports.Mesh{Vertices: vertices, Camera: camera}, nil
}

// Close releases the network. Safe to call without a prior Load.
func (m *Model) Close() error {
	if !m.loaded {
		return nil
	}
	m.loaded = false
	return m.net.Close()
}

// loadTopology reads the MANO triangle list stored next to the checkpoint.
func (m *Model) loadTopology() ([]int32, error) {
	path := m.sidecarPath()
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read face topology %s: %w", path, err)
	}

	rd, err := gonpy.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse face topology %s: %w", path, err)
	}

	var faces []int32
	switch rd.Dtype {
	case "i4":
		faces, err = rd.GetInt32()
	case "i8":
		// MANO exports vary between int32 and int64.
		var wide []int64
		wide, err = rd.GetInt64()
		if err == nil {
			faces = make([]int32, len(wide))
			for i, v := range wide {
				faces[i] = int32(v)
			}
		}
	default:
		return nil, fmt.Errorf("face topology %s: unsupported dtype %s", path, rd.Dtype)
	}
	if err != nil {
		return nil, fmt.Errorf("decode face topology %s: %w", path, err)
	}
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("face topology %s: %d values do not form triangles", path, len(faces))
	}
	return faces, nil
}

// sidecarPath derives the triangle list location from the checkpoint path.
func (m *Model) sidecarPath() string {
	return filepath.Join(filepath.Dir(m.checkpointPath), facesSidecar)
}

// resolveDevice maps a device name onto a DNN backend and target.
func resolveDevice(device string) (gocv.NetBackendType, gocv.NetTargetType, error) {
	switch device {
	case "cuda":
		return gocv.NetBackendCUDA, gocv.NetTargetCUDA, nil
	case "cpu":
		return gocv.NetBackendDefault, gocv.NetTargetCPU, nil
	default:
		return 0, 0, fmt.Errorf("unknown device %q (supported: cuda, cpu)", device)
	}
}

// resolveOutputs finds the vertex and camera tensors among the graph
// outputs. Failing here keeps a bad export from reaching inference.
func resolveOutputs(net *gocv.Net) (string, error) {
	names := outputNames(net)

	vertexName := ""
	for _, want := range vertexOutputs {
		if contains(names, want) {
			vertexName = want
			break
		}
	}
	if vertexName == "" {
		return "", fmt.Errorf("model outputs %v carry no vertex tensor (want %q or %q)",
			names, vertexOutputs[0], vertexOutputs[1])
	}
	if !contains(names, cameraOutput) {
		return "", fmt.Errorf("model outputs %v carry no %q tensor", names, cameraOutput)
	}
	return vertexName, nil
}

// outputNames lists the names of the graph's unconnected output layers.
func outputNames(net *gocv.Net) []string {
	ids := net.GetUnconnectedOutLayers()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		layer := net.GetLayer(id)
		names = append(names, layer.GetName())
		layer.Close()
	}
	return names
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}

// maxIndex returns the largest vertex index referenced by the triangles.
func maxIndex(topology []int32) int {
	max := int32(-1)
	for _, idx := range topology {
		if idx > max {
			max = idx
		}
	}
	return int(max)
}

// copyFloats copies a tensor out of OpenCV-owned memory.
func copyFloats(mat gocv.Mat) ([]float32, error) {
	data, err := mat.DataPtrFloat32()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

func closeMats(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}

// Ensure Model implements ports.MeshModel
var _ ports.MeshModel = (*Model)(nil)

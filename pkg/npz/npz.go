// Package npz encodes and decodes NumPy .npz array archives.
//
// An .npz file is a zip archive whose members are .npy arrays, one per
// named entry, compressed with deflate. The layout matches what
// numpy.savez_compressed produces, so archives written here load with
// numpy.load and vice versa.
package npz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kshedden/gonpy"
)

// Writer accumulates named arrays and encodes them into one compressed
// archive. Entries are written in call order. A Writer is single-use:
// after Bytes it accepts no further entries.
type Writer struct {
	buf    bytes.Buffer
	zw     *zip.Writer
	closed bool
}

// NewWriter returns an empty archive writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.zw = zip.NewWriter(&w.buf)
	return w
}

// Float32 adds a float32 array entry with the given shape.
// The product of shape must equal len(data); a zero dimension is valid.
func (w *Writer) Float32(name string, shape []int, data []float32) error {
	nw, err := w.entryWriter(name, shape, len(data))
	if err != nil {
		return err
	}
	if err := nw.WriteFloat32(data); err != nil {
		return fmt.Errorf("npz: write entry %q: %w", name, err)
	}
	return nil
}

// Int32 adds an int32 array entry with the given shape.
// The product of shape must equal len(data); a zero dimension is valid.
func (w *Writer) Int32(name string, shape []int, data []int32) error {
	nw, err := w.entryWriter(name, shape, len(data))
	if err != nil {
		return err
	}
	if err := nw.WriteInt32(data); err != nil {
		return fmt.Errorf("npz: write entry %q: %w", name, err)
	}
	return nil
}

// Bytes finalizes the archive and returns its bytes.
func (w *Writer) Bytes() ([]byte, error) {
	if !w.closed {
		w.closed = true
		if err := w.zw.Close(); err != nil {
			return nil, fmt.Errorf("npz: close archive: %w", err)
		}
	}
	return w.buf.Bytes(), nil
}

func (w *Writer) entryWriter(name string, shape []int, length int) (*gonpy.NpyWriter, error) {
	if w.closed {
		return nil, fmt.Errorf("npz: writer already finalized, cannot add %q", name)
	}
	if n := shapeSize(shape); n != length {
		return nil, fmt.Errorf("npz: entry %q: shape %v holds %d elements, data has %d", name, shape, n, length)
	}
	// archive/zip's Create compresses with deflate, matching savez_compressed.
	zf, err := w.zw.Create(name + ".npy")
	if err != nil {
		return nil, fmt.Errorf("npz: create entry %q: %w", name, err)
	}
	// gonpy closes the writer it is handed after the payload, so the zip
	// member writer gets a no-op Close.
	nw, err := gonpy.NewWriter(nopWriteCloser{zf})
	if err != nil {
		return nil, fmt.Errorf("npz: entry %q: %w", name, err)
	}
	nw.Shape = shape
	return nw, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Archive is a decoded npz archive held in memory.
type Archive struct {
	entries map[string]entry
}

type entry struct {
	dtype  string
	shape  []int
	floats []float32
	ints   []int32
}

// Decode parses a complete npz archive from data.
func Decode(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("npz: open archive: %w", err)
	}
	a := &Archive{entries: make(map[string]entry, len(zr.File))}
	for _, f := range zr.File {
		name := strings.TrimSuffix(f.Name, ".npy")
		e, err := decodeEntry(f)
		if err != nil {
			return nil, fmt.Errorf("npz: entry %q: %w", name, err)
		}
		a.entries[name] = e
	}
	return a, nil
}

func decodeEntry(f *zip.File) (entry, error) {
	rc, err := f.Open()
	if err != nil {
		return entry{}, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return entry{}, err
	}
	r, err := gonpy.NewReader(bytes.NewReader(raw))
	if err != nil {
		return entry{}, err
	}
	e := entry{dtype: r.Dtype, shape: r.Shape}
	switch r.Dtype {
	case "f4":
		e.floats, err = r.GetFloat32()
	case "i4":
		e.ints, err = r.GetInt32()
	default:
		return entry{}, fmt.Errorf("unsupported dtype %q", r.Dtype)
	}
	if err != nil {
		return entry{}, err
	}
	return e, nil
}

// Names returns the entry names in sorted order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.entries))
	for name := range a.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape returns the shape of the named entry.
func (a *Archive) Shape(name string) ([]int, bool) {
	e, ok := a.entries[name]
	if !ok {
		return nil, false
	}
	return e.shape, true
}

// Float32 returns the named float32 entry and its shape.
func (a *Archive) Float32(name string) ([]float32, []int, error) {
	e, ok := a.entries[name]
	if !ok {
		return nil, nil, fmt.Errorf("npz: no entry %q", name)
	}
	if e.dtype != "f4" {
		return nil, nil, fmt.Errorf("npz: entry %q has dtype %q, want f4", name, e.dtype)
	}
	return e.floats, e.shape, nil
}

// Int32 returns the named int32 entry and its shape.
func (a *Archive) Int32(name string) ([]int32, []int, error) {
	e, ok := a.entries[name]
	if !ok {
		return nil, nil, fmt.Errorf("npz: no entry %q", name)
	}
	if e.dtype != "i4" {
		return nil, nil, fmt.Errorf("npz: entry %q has dtype %q, want i4", name, e.dtype)
	}
	return e.ints, e.shape, nil
}

func shapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

package trimesh

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// TriState is the lazily computed result of a mesh validation check. A flag
// stays StateUnknown until its check runs, then holds StateTrue or StateFalse
// until Invalidate resets it. Mutating faces without invalidating is a caller
// error.
type TriState uint8

const (
	StateUnknown TriState = iota
	StateTrue
	StateFalse
)

func (s TriState) String() string {
	return [...]string{"Unchecked", "True", "False"}[s]
}

// ErrorMode selects how a failed topology check is reported: ModeWarn prints
// a diagnostic and continues, ModeRaise returns an error, ModeIgnore proceeds
// silently.
type ErrorMode uint8

const (
	ModeWarn ErrorMode = iota
	ModeRaise
	ModeIgnore
)

func (m ErrorMode) validate() error {
	if m > ModeIgnore {
		return fmt.Errorf("invalid error mode %d, must be ModeWarn, ModeRaise or ModeIgnore", m)
	}
	return nil
}

// ParseErrorMode maps the textual mode names used in scenario files and on
// the command line to an ErrorMode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "warn":
		return ModeWarn, nil
	case "raise":
		return ModeRaise, nil
	case "ignore":
		return ModeIgnore, nil
	}
	return ModeWarn, fmt.Errorf("unknown error mode %q, must be warn, raise or ignore", s)
}

var (
	ErrOpenMesh     = errors.New("mesh is open, field calculation may deliver erroneous results")
	ErrDisjointMesh = errors.New("mesh is disjoint, parts can be obtained via FacesSubsets")
)

// Status is a read-only snapshot of the three validation flags.
type Status struct {
	Closed     TriState
	Connected  TriState
	Reoriented TriState
}

/*
Mesh is a triangular surface mesh: a shared vertex sequence plus a face index
sequence. Winding order of each face triple is the only carrier of orientation
information, there is no stored normal. Vertex geometry is immutable after
construction, only face winding may be rewritten (by ReorientFaces).

A Mesh need not be closed or connected at construction time. The topology
checks compute once and memoize on the instance; the instance is owned by a
single logical caller and carries no locking.
*/
type Mesh struct {
	vertices *mat.Dense // (nv,3)
	faces    [][3]int

	graph        *MeshGraph
	facesSubsets [][]int
	closed       TriState
	connected    TriState
	reoriented   TriState
}

// NewMesh builds a mesh from a (nv,3) vertex matrix and face index triples.
// Missing geometry or out-of-bounds face indices abort construction.
func NewMesh(vertices *mat.Dense, faces [][3]int) (m *Mesh, err error) {
	if vertices == nil {
		return nil, errors.New("mesh vertices must be set")
	}
	if len(faces) == 0 {
		return nil, errors.New("mesh faces must be set")
	}
	nv, nc := vertices.Dims()
	if nc != 3 || nv == 0 {
		return nil, fmt.Errorf("mesh vertices must have shape (n,3), have (%d,%d)", nv, nc)
	}
	for i, f := range faces {
		for _, vert := range f {
			if vert < 0 || vert >= nv {
				return nil, fmt.Errorf("face %d references vertex %d, out of bounds for %d vertices",
					i, vert, nv)
			}
		}
	}
	m = &Mesh{
		vertices: vertices,
		faces:    faces,
	}
	return
}

// Options drives the construction-time validation flow of NewMeshChecked.
// The two modes control the closedness and connectivity checks; ModeIgnore
// skips the check entirely so the flag stays Unchecked.
type Options struct {
	ValidateClosed    ErrorMode
	ValidateConnected ErrorMode
	Reorient          bool
}

/// DefaultOptions mirrors the usual construction flow: warn on open or
// disjoint meshes and reorient the faces.
func DefaultOptions() Options {
	return Options{
		ValidateClosed:    ModeWarn,
		ValidateConnected: ModeWarn,
		Reorient:          true,
	}
}

// NewMeshChecked builds a mesh and immediately runs the validation flow
// selected by opts.
func NewMeshChecked(vertices *mat.Dense, faces [][3]int, opts Options) (m *Mesh, err error) {
	if m, err = NewMesh(vertices, faces); err != nil {
		return
	}
	if opts.ValidateClosed != ModeIgnore {
		if _, err = m.IsClosed(opts.ValidateClosed); err != nil {
			return nil, err
		}
	}
	if opts.ValidateConnected != ModeIgnore {
		if _, err = m.IsConnected(opts.ValidateConnected); err != nil {
			return nil, err
		}
	}
	if opts.Reorient {
		if err = m.ReorientFaces(ModeWarn); err != nil {
			return nil, err
		}
	}
	return
}

func (m *Mesh) NumVertices() int { return m.vertices.RawMatrix().Rows }

func (m *Mesh) NumFaces() int { return len(m.faces) }

// Vertices returns the shared vertex matrix. Callers must treat it as
// read-only.
func (m *Mesh) Vertices() *mat.Dense { return m.vertices }

// Faces returns the face index triples. Callers must treat them as read-only;
// winding is rewritten only through ReorientFaces.
func (m *Mesh) Faces() [][3]int { return m.faces }

// Status reports the current validation snapshot.
func (m *Mesh) Status() Status {
	return Status{
		Closed:     m.closed,
		Connected:  m.connected,
		Reoriented: m.reoriented,
	}
}

// Invalidate is the single reset path for the memoized validation state.
// A caller that mutates faces outside ReorientFaces must invalidate.
func (m *Mesh) Invalidate() {
	m.graph = nil
	m.facesSubsets = nil
	m.closed = StateUnknown
	m.connected = StateUnknown
	m.reoriented = StateUnknown
}

// Graph returns the face-edge incidence structure, building it on first use.
func (m *Mesh) Graph() *MeshGraph {
	if m.graph == nil {
		m.graph = NewMeshGraph(m.faces)
	}
	return m.graph
}

// IsClosed reports whether every undirected edge is shared by exactly two
// faces. The result is memoized.
func (m *Mesh) IsClosed(mode ErrorMode) (closed bool, err error) {
	if err = mode.validate(); err != nil {
		return
	}
	if m.closed == StateUnknown {
		if m.Graph().IsClosed() {
			m.closed = StateTrue
		} else {
			m.closed = StateFalse
		}
	}
	closed = m.closed == StateTrue
	if !closed {
		switch mode {
		case ModeWarn:
			fmt.Fprintf(os.Stderr, "Warning: %v\n", ErrOpenMesh)
		case ModeRaise:
			err = ErrOpenMesh
		}
	}
	return
}

// IsConnected reports whether the face-adjacency graph has a single connected
// component. The result is memoized.
func (m *Mesh) IsConnected(mode ErrorMode) (connected bool, err error) {
	if err = mode.validate(); err != nil {
		return
	}
	if m.connected == StateUnknown {
		if len(m.FacesSubsets()) == 1 {
			m.connected = StateTrue
		} else {
			m.connected = StateFalse
		}
	}
	connected = m.connected == StateTrue
	if !connected {
		switch mode {
		case ModeWarn:
			fmt.Fprintf(os.Stderr, "Warning: %v\n", ErrDisjointMesh)
		case ModeRaise:
			err = ErrDisjointMesh
		}
	}
	return
}

// FacesSubsets returns the face index sets of the connected components of the
// face-adjacency graph, one per disjoint mesh part, memoized.
func (m *Mesh) FacesSubsets() [][]int {
	if m.facesSubsets == nil {
		m.facesSubsets = m.Graph().Components()
	}
	return m.facesSubsets
}

// Centroid returns the area-weighted centroid of the mesh surface.
func (m *Mesh) Centroid() (c [3]float64) {
	var (
		totalArea float64
	)
	for _, f := range m.faces {
		v0 := m.vertices.RawRowView(f[0])
		v1 := m.vertices.RawRowView(f[1])
		v2 := m.vertices.RawRowView(f[2])
		var e1, e2, cr [3]float64
		for k := 0; k < 3; k++ {
			e1[k] = v1[k] - v0[k]
			e2[k] = v2[k] - v0[k]
		}
		cr[0] = e1[1]*e2[2] - e1[2]*e2[1]
		cr[1] = e1[2]*e2[0] - e1[0]*e2[2]
		cr[2] = e1[0]*e2[1] - e1[1]*e2[0]
		area := 0.5 * vecNorm(cr)
		for k := 0; k < 3; k++ {
			c[k] += area * (v0[k] + v1[k] + v2[k]) / 3.
		}
		totalArea += area
	}
	for k := 0; k < 3; k++ {
		c[k] /= totalArea
	}
	return
}

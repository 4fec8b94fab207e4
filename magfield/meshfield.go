package magfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomag/trimesh"
	"github.com/notargets/gomag/utils"
)

/*
MeshField aggregates per-triangle field contributions over a whole triangular
mesh. The per-face vertex batches are built once and cached; callers that
rewrite the mesh winding after construction must InvalidateCache.

For B evaluations the magnetization jump is accounted for: observers enclosed
by the mesh surface receive the polarization vector on top of the surface
charge field, so B is the physical flux density inside the magnet as well.
H needs no such correction, the surface charge field divided by mu0 is
already the H field everywhere.
*/
type MeshField struct {
	mesh         *trimesh.Mesh
	polarization [3]float64
	perFace      *mat.Dense // optional (nfaces,3) per-face polarizations

	v0, v1, v2 *mat.Dense // cached per-face vertex batches
}

func NewMeshField(m *trimesh.Mesh, polarization [3]float64) *MeshField {
	return &MeshField{
		mesh:         m,
		polarization: polarization,
	}
}

// NewMeshFieldPerFace assigns each face its own polarization vector,
// rows co-indexed with the mesh faces.
func NewMeshFieldPerFace(m *trimesh.Mesh, polarizations *mat.Dense) (mf *MeshField, err error) {
	nr, nc := polarizations.Dims()
	if nr != m.NumFaces() || nc != 3 {
		return nil, fmt.Errorf("per-face polarizations must have shape (%d,3), have (%d,%d)",
			m.NumFaces(), nr, nc)
	}
	mf = &MeshField{
		mesh:    m,
		perFace: polarizations,
	}
	return
}

func (mf *MeshField) Mesh() *trimesh.Mesh { return mf.mesh }

// Status exposes the mesh validation snapshot.
func (mf *MeshField) Status() trimesh.Status { return mf.mesh.Status() }

// InvalidateCache drops the cached per-face batches. Required after any
// mutation of the mesh faces, including ReorientFaces.
func (mf *MeshField) InvalidateCache() {
	mf.v0, mf.v1, mf.v2 = nil, nil, nil
}

func (mf *MeshField) faceBatches() (v0, v1, v2 *mat.Dense) {
	if mf.v0 == nil {
		var (
			V     = mf.mesh.Vertices()
			faces = mf.mesh.Faces()
			nf    = len(faces)
		)
		mf.v0 = mat.NewDense(nf, 3, nil)
		mf.v1 = mat.NewDense(nf, 3, nil)
		mf.v2 = mat.NewDense(nf, 3, nil)
		for i, f := range faces {
			mf.v0.SetRow(i, V.RawRowView(f[0]))
			mf.v1.SetRow(i, V.RawRowView(f[1]))
			mf.v2.SetRow(i, V.RawRowView(f[2]))
		}
	}
	return mf.v0, mf.v1, mf.v2
}

func (mf *MeshField) subsetBatches(faces []int) (v0, v1, v2 *mat.Dense) {
	var (
		V  = mf.mesh.Vertices()
		nf = len(faces)
	)
	v0 = mat.NewDense(nf, 3, nil)
	v1 = mat.NewDense(nf, 3, nil)
	v2 = mat.NewDense(nf, 3, nil)
	for i, fi := range faces {
		f := mf.mesh.Faces()[fi]
		v0.SetRow(i, V.RawRowView(f[0]))
		v1.SetRow(i, V.RawRowView(f[1]))
		v2.SetRow(i, V.RawRowView(f[2]))
	}
	return
}

func (mf *MeshField) polarizationRows(faces []int, times int) (P *mat.Dense) {
	var (
		nf = len(faces)
	)
	P = mat.NewDense(nf*times, 3, nil)
	for i, fi := range faces {
		row := mf.polarization[:]
		if mf.perFace != nil {
			row = mf.perFace.RawRowView(fi)
		}
		for k := 0; k < times; k++ {
			P.SetRow(i*times+k, row)
		}
	}
	return
}

// Evaluate sums the contributions of all mesh faces at each observer row and
// returns one field vector per observer.
func (mf *MeshField) Evaluate(kind FieldKind, observers *mat.Dense) (field *mat.Dense, err error) {
	if err = checkObservers(observers); err != nil {
		return
	}
	all := make([]int, mf.mesh.NumFaces())
	for i := range all {
		all[i] = i
	}
	v0, v1, v2 := mf.faceBatches()
	return mf.evaluate(kind, observers, all, v0, v1, v2), nil
}

// EvaluateSubset sums only the listed faces, e.g. one entry of the mesh's
// FacesSubsets partition, so disjoint shells can be evaluated separately.
func (mf *MeshField) EvaluateSubset(kind FieldKind, observers *mat.Dense, faces []int) (field *mat.Dense, err error) {
	if err = checkObservers(observers); err != nil {
		return
	}
	for _, fi := range faces {
		if fi < 0 || fi >= mf.mesh.NumFaces() {
			return nil, fmt.Errorf("face index %d out of bounds for %d faces", fi, mf.mesh.NumFaces())
		}
	}
	v0, v1, v2 := mf.subsetBatches(faces)
	return mf.evaluate(kind, observers, faces, v0, v1, v2), nil
}

func (mf *MeshField) evaluate(kind FieldKind, observers *mat.Dense, faces []int,
	v0, v1, v2 *mat.Dense) (field *mat.Dense) {
	var (
		no, _ = observers.Dims()
		nf    = len(faces)

		// face-major pairing: row f*no+o pairs face f with observer o
		obsB = utils.TileRows(observers, nf)
		v0B  = utils.RepeatRows(v0, no)
		v1B  = utils.RepeatRows(v1, no)
		v2B  = utils.RepeatRows(v2, no)
		pB   = mf.polarizationRows(faces, no)
	)
	per := TriangleField(kind, obsB, v0B, v1B, v2B, pB)
	field = utils.SumRowGroups(per, nf)
	if kind == FieldB {
		mf.addEnclosedPolarization(observers, faces, field)
	}
	return
}

/*
addEnclosedPolarization adds the polarization vector to the B rows of
observers enclosed by the evaluated faces. Enclosure is decided by the summed
solid angle: +-4 pi for an enclosed observer, 0 outside, +-2 pi exactly on
the surface; the threshold 3 pi separates inside from surface and outside.
*/
func (mf *MeshField) addEnclosedPolarization(observers *mat.Dense, faces []int, field *mat.Dense) {
	var (
		sums  = mf.SolidAngleSums(observers, faces)
		no, _ = observers.Dims()
	)
	for o := 0; o < no; o++ {
		if math.Abs(sums[o]) > 3.*math.Pi {
			row := field.RawRowView(o)
			pol := mf.polarization[:]
			if mf.perFace != nil {
				// per-face polarizations have no single interior value;
				// the homogeneous-body correction uses the mean
				pol = mf.meanPolarization()
			}
			row[0] += pol[0]
			row[1] += pol[1]
			row[2] += pol[2]
		}
	}
}

func (mf *MeshField) meanPolarization() []float64 {
	var (
		nr, _ = mf.perFace.Dims()
		mean  = make([]float64, 3)
	)
	for i := 0; i < nr; i++ {
		row := mf.perFace.RawRowView(i)
		mean[0] += row[0] / float64(nr)
		mean[1] += row[1] / float64(nr)
		mean[2] += row[2] / float64(nr)
	}
	return mean
}

// SolidAngleSums returns, per observer, the summed signed solid angle the
// listed faces subtend. For a closed outward-oriented surface the sum is
// -4 pi at interior observers and 0 at exterior ones.
func (mf *MeshField) SolidAngleSums(observers *mat.Dense, faces []int) (sums []float64) {
	var (
		no, _      = observers.Dims()
		v0, v1, v2 = mf.subsetBatches(faces)
		nf         = len(faces)

		obsB = utils.TileRows(observers, nf)
		R0   = utils.SubRows(utils.RepeatRows(v0, no), obsB)
		R1   = utils.SubRows(utils.RepeatRows(v1, no), obsB)
		R2   = utils.SubRows(utils.RepeatRows(v2, no), obsB)
	)
	sa := SolidAngles(
		[3]*mat.Dense{R0, R1, R2},
		[3][]float64{utils.NormRows(R0), utils.NormRows(R1), utils.NormRows(R2)},
	)
	sums = make([]float64, no)
	for f := 0; f < nf; f++ {
		for o := 0; o < no; o++ {
			sums[o] += sa[f*no+o]
		}
	}
	return
}

// checkObservers is the shape validation boundary for external observer
// input; the inner solver panics instead of validating.
func checkObservers(observers *mat.Dense) error {
	if observers == nil {
		return fmt.Errorf("observers must be set")
	}
	nr, nc := observers.Dims()
	if nc != 3 || nr == 0 {
		return fmt.Errorf("observers must have shape (n,3), have (%d,%d)", nr, nc)
	}
	return nil
}

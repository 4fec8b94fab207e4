package magfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomag/utils"
)

// FieldKind selects the output quantity of a field evaluation: B in tesla or
// H in ampere/metre.
type FieldKind uint8

const (
	FieldB FieldKind = iota
	FieldH
)

func (k FieldKind) String() string {
	return [...]string{"B", "H"}[k]
}

// ParseFieldKind maps the external "B"/"H" spelling onto the enum.
func ParseFieldKind(s string) (k FieldKind, err error) {
	switch s {
	case "B", "b":
		k = FieldB
	case "H", "h":
		k = FieldH
	default:
		err = fmt.Errorf("unknown field kind %q, must be B or H", s)
	}
	return
}

/*
TriangleField computes the magnetic field of homogeneously charged triangular
surfaces, vectorized over co-indexed batches: observers (n,3), the three
triangle vertex batches v0,v1,v2 (n,3), and polarizations (n,3). The surface
charge of each triangle is the projection of its polarization vector onto the
surface normal given by the winding (right-hand rule). Lengths are in metres,
polarization in tesla; output is (n,3), B in tesla or H in ampere/metre.

Implemented from Guptasarma, Geophysics, 1999, 64:1, 70-74.

Numerical edge cases resolve to documented values instead of errors so large
batches never abort on a few degenerate rows:
  - observer on a corner: NaN row
  - observer on an edge or in the triangle plane outside it: the component
    along the triangle normal is exactly 0
  - degenerate (zero area) triangle: NaN row, from the NaN normal

The per-edge line integral suffers catastrophic cancellation where the
closeness measure |r + R.L/l| approaches 0 (observer near the edge line), so
an alternate evaluation is selected there per element, never per batch.
Precision still degrades as (distance to edge)^2 when approaching an edge.

Batch size mismatches are programmer errors and panic; callers are expected
to validate external input shapes before building batches.
*/
func TriangleField(kind FieldKind, observers, v0, v1, v2, polarizations *mat.Dense) (field *mat.Dense) {
	var (
		nrm   = utils.UnitNormals(v0, v1, v2)
		sigma = utils.DotRows(nrm, polarizations)

		// vertex <-> observer
		R0 = utils.SubRows(v0, observers)
		R1 = utils.SubRows(v1, observers)
		R2 = utils.SubRows(v2, observers)
		r0 = utils.NormRows(R0)
		r1 = utils.NormRows(R1)
		r2 = utils.NormRows(R2)

		// vertex <-> vertex
		L0 = utils.SubRows(v1, v0)
		L1 = utils.SubRows(v2, v1)
		L2 = utils.SubRows(v0, v2)

		n = len(sigma)
	)
	PQR := mat.NewDense(n, 3, nil)
	for _, edge := range []struct {
		L *mat.Dense
		R *mat.Dense
		r []float64
	}{
		{L0, R0, r0},
		{L1, R1, r1},
		{L2, R2, r2},
	} {
		var (
			l = utils.NormRows(edge.L)
			b = utils.DotRows(edge.R, edge.L)
		)
		for i := 0; i < n; i++ {
			var (
				li, ri, bi = l[i], edge.r[i], b[i]
				bl         = bi / li
				ind        = math.Abs(ri + bl)
				I          float64
			)
			if ind > 1.e-12 {
				I = math.Log((math.Sqrt(li*li+2.*bi+ri*ri)+li+bl)/ind) / li
			} else {
				// observer on the edge line, the primary form cancels catastrophically
				I = -math.Log(math.Abs(li-ri)/ri) / li
			}
			row, Lr := PQR.RawRowView(i), edge.L.RawRowView(i)
			row[0] += I * Lr[0]
			row[1] += I * Lr[1]
			row[2] += I * Lr[2]
		}
	}
	var (
		sa    = SolidAngles([3]*mat.Dense{R0, R1, R2}, [3][]float64{r0, r1, r2})
		cr    = utils.CrossRows(nrm, PQR)
		scale = 1. / (4. * math.Pi)
	)
	if kind == FieldH {
		scale /= MU0
	}
	field = mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		var (
			out = field.RawRowView(i)
			nr  = nrm.RawRowView(i)
			cri = cr.RawRowView(i)
			s   = sigma[i] * scale
		)
		out[0] = s * (nr[0]*sa[i] - cri[0])
		out[1] = s * (nr[1]*sa[i] - cri[1])
		out[2] = s * (nr[2]*sa[i] - cri[2])
	}
	return
}

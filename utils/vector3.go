package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

/*
Row-batched geometry over (n,3) matrices. Each row is one 3-vector, the row
index is the batch dimension. All functions are pure and leave their inputs
untouched. Dimension mismatches are programmer errors and panic.
*/

func checkRows3(name string, ms ...*mat.Dense) (n int) {
	var (
		first = true
	)
	for _, m := range ms {
		nr, nc := m.Dims()
		if nc != 3 {
			panic(fmt.Errorf("%s: expected 3 columns, have %d", name, nc))
		}
		if first {
			n = nr
			first = false
		} else if nr != n {
			panic(fmt.Errorf("%s: row count mismatch, have %d and %d", name, n, nr))
		}
	}
	return
}

// CrossRows computes the row-wise cross product of two (n,3) batches.
func CrossRows(a, b *mat.Dense) (c *mat.Dense) {
	var (
		n = checkRows3("CrossRows", a, b)
	)
	c = mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		ar, br, cr := a.RawRowView(i), b.RawRowView(i), c.RawRowView(i)
		cr[0] = ar[1]*br[2] - ar[2]*br[1]
		cr[1] = ar[2]*br[0] - ar[0]*br[2]
		cr[2] = ar[0]*br[1] - ar[1]*br[0]
	}
	return
}

// DotRows computes the row-wise inner product of two (n,3) batches.
func DotRows(a, b *mat.Dense) (d []float64) {
	var (
		n = checkRows3("DotRows", a, b)
	)
	d = make([]float64, n)
	for i := 0; i < n; i++ {
		ar, br := a.RawRowView(i), b.RawRowView(i)
		d[i] = ar[0]*br[0] + ar[1]*br[1] + ar[2]*br[2]
	}
	return
}

// NormRows computes the Euclidean norm of each row of an (n,3) batch.
func NormRows(a *mat.Dense) (r []float64) {
	var (
		n = checkRows3("NormRows", a)
	)
	r = make([]float64, n)
	for i := 0; i < n; i++ {
		ar := a.RawRowView(i)
		r[i] = math.Sqrt(ar[0]*ar[0] + ar[1]*ar[1] + ar[2]*ar[2])
	}
	return
}

// SubRows computes a-b row-wise for two (n,3) batches.
func SubRows(a, b *mat.Dense) (c *mat.Dense) {
	var (
		n = checkRows3("SubRows", a, b)
	)
	c = mat.NewDense(n, 3, nil)
	c.Sub(a, b)
	return
}

/*
UnitNormals computes the unit normal of each triangle in a batch given its
three vertex batches, normal = cross(v1-v0, v2-v0) normalized per the
right-hand rule. A zero-area triangle has a zero-length cross product and its
normalization yields a NaN row. That NaN propagates into any field computed
from the triangle and is the documented failure state for degenerate
geometry, callers must tolerate it.
*/
func UnitNormals(v0, v1, v2 *mat.Dense) (nrm *mat.Dense) {
	var (
		n = checkRows3("UnitNormals", v0, v1, v2)
	)
	nrm = CrossRows(SubRows(v1, v0), SubRows(v2, v0))
	for i := 0; i < n; i++ {
		row := nrm.RawRowView(i)
		nn := math.Sqrt(row[0]*row[0] + row[1]*row[1] + row[2]*row[2])
		row[0] /= nn
		row[1] /= nn
		row[2] /= nn
	}
	return
}

package magfield

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomag/utils"
)

/*
solidAngleClamp wraps the branch jumps of 2*atan2 near +-2 pi back to 0.

When an observer sits in a triangle's plane inside the triangle, N vanishes
exactly while D is negative, and atan2 lands on the +-pi branch cut, so the
formula reports +-2 pi instead of the correct in-plane value 0. The threshold
sits just below 2 pi so those rows, and only those rows, are zeroed. It is a
numerical patch, not a mathematical truncation, and the exact constant is kept
to reproduce the reference behavior bit for bit.
*/
const solidAngleClamp = 6.2831853

/*
SolidAngles computes the signed solid angle each triangle of a batch subtends
at its co-indexed observer. R holds the three observer-to-vertex vector
batches (n,3), r their row norms.

With N = R2.(R1 x R0) and
D = r0 r1 r2 + (R2.R1) r0 + (R2.R0) r1 + (R1.R0) r2,
the angle is 2*atan2(N, D), wrapped so its magnitude never exceeds 2 pi.

An observer exactly on a vertex degenerates both N and D to 0 and yields 0
here; the field solver still produces NaN for that row through the edge
kernels. An observer in the triangle's plane outside the triangle, or on an
edge, yields 0.
*/
func SolidAngles(R [3]*mat.Dense, r [3][]float64) (sa []float64) {
	var (
		N   = utils.DotRows(R[2], utils.CrossRows(R[1], R[0]))
		a21 = utils.DotRows(R[2], R[1])
		a20 = utils.DotRows(R[2], R[0])
		a10 = utils.DotRows(R[1], R[0])
		n   = len(N)
	)
	sa = make([]float64, n)
	for i := 0; i < n; i++ {
		D := r[0][i]*r[1][i]*r[2][i] + a21[i]*r[0][i] + a20[i]*r[1][i] + a10[i]*r[2][i]
		res := 2. * math.Atan2(N[i], D)
		if math.Abs(res) > solidAngleClamp {
			res = 0
		}
		sa[i] = res
	}
	return
}

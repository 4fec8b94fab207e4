package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RepeatRows builds a (n*times, nc) matrix where each row of M appears `times`
// times consecutively: [r0, r0, ..., r1, r1, ...].
func RepeatRows(M *mat.Dense, times int) (R *mat.Dense) {
	var (
		nr, nc = M.Dims()
	)
	if times < 1 {
		panic(fmt.Errorf("RepeatRows: times must be positive, have %d", times))
	}
	R = mat.NewDense(nr*times, nc, nil)
	for i := 0; i < nr; i++ {
		row := M.RawRowView(i)
		for k := 0; k < times; k++ {
			R.SetRow(i*times+k, row)
		}
	}
	return
}

// TileRows builds a (n*times, nc) matrix repeating the whole row block of M
// `times` times: [r0, r1, ..., r0, r1, ...].
func TileRows(M *mat.Dense, times int) (R *mat.Dense) {
	var (
		nr, nc = M.Dims()
	)
	if times < 1 {
		panic(fmt.Errorf("TileRows: times must be positive, have %d", times))
	}
	R = mat.NewDense(nr*times, nc, nil)
	for k := 0; k < times; k++ {
		for i := 0; i < nr; i++ {
			R.SetRow(k*nr+i, M.RawRowView(i))
		}
	}
	return
}

// SumRowGroups reduces a (groups*groupSize, nc) matrix to (groupSize, nc) by
// accumulating row i of every group into output row i. It is the contraction
// used to sum per-triangle contributions onto a shared observer batch.
func SumRowGroups(M *mat.Dense, groups int) (R *mat.Dense) {
	var (
		nr, nc = M.Dims()
	)
	if groups < 1 || nr%groups != 0 {
		panic(fmt.Errorf("SumRowGroups: cannot split %d rows into %d groups", nr, groups))
	}
	groupSize := nr / groups
	R = mat.NewDense(groupSize, nc, nil)
	for g := 0; g < groups; g++ {
		for i := 0; i < groupSize; i++ {
			out := R.RawRowView(i)
			in := M.RawRowView(g*groupSize + i)
			for j := 0; j < nc; j++ {
				out[j] += in[j]
			}
		}
	}
	return
}

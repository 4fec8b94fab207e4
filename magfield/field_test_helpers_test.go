package magfield

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gomag/trimesh"
)

// cubeMesh builds a closed, outward-wound 12-triangle unit cube centered at
// offset.
func cubeMesh(offset [3]float64) *trimesh.Mesh {
	V := mat.NewDense(8, 3, nil)
	i := 0
	for _, z := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, x := range []float64{-0.5, 0.5} {
				V.SetRow(i, []float64{x + offset[0], y + offset[1], z + offset[2]})
				i++
			}
		}
	}
	m, err := trimesh.NewMesh(V, cubeFaces(0))
	if err != nil {
		panic(err)
	}
	return m
}

func cubeFaces(base int) (faces [][3]int) {
	f := [][3]int{
		{0, 2, 1}, {1, 2, 3},
		{4, 5, 6}, {5, 7, 6},
		{0, 1, 4}, {1, 5, 4},
		{2, 6, 3}, {3, 6, 7},
		{0, 4, 2}, {2, 4, 6},
		{1, 3, 5}, {3, 7, 5},
	}
	faces = make([][3]int, len(f))
	for i, face := range f {
		faces[i] = [3]int{face[0] + base, face[1] + base, face[2] + base}
	}
	return
}

// twoCubesMesh holds two disjoint unit cubes, the second centered at (2,0,0).
func twoCubesMesh() *trimesh.Mesh {
	V := mat.NewDense(16, 3, nil)
	i := 0
	for _, ox := range []float64{0, 2} {
		for _, z := range []float64{-0.5, 0.5} {
			for _, y := range []float64{-0.5, 0.5} {
				for _, x := range []float64{-0.5, 0.5} {
					V.SetRow(i, []float64{x + ox, y, z})
					i++
				}
			}
		}
	}
	faces := append(cubeFaces(0), cubeFaces(8)...)
	m, err := trimesh.NewMesh(V, faces)
	if err != nil {
		panic(err)
	}
	return m
}

func singleRow(x, y, z float64) *mat.Dense {
	return mat.NewDense(1, 3, []float64{x, y, z})
}

package trimesh

import "gonum.org/v1/gonum/mat"

// cubeVertices returns the 8 corners of a unit cube centered at offset,
// indexed with x as bit 0, y as bit 1, z as bit 2.
func cubeVertices(offset [3]float64) (V *mat.Dense) {
	V = mat.NewDense(8, 3, nil)
	i := 0
	for _, z := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, x := range []float64{-0.5, 0.5} {
				V.SetRow(i, []float64{x + offset[0], y + offset[1], z + offset[2]})
				i++
			}
		}
	}
	return
}

// cubeFaces returns the 12-triangle tessellation of the cube with all
// windings outward.
func cubeFaces(base int) (faces [][3]int) {
	f := [][3]int{
		{0, 2, 1}, {1, 2, 3}, // z = -1/2
		{4, 5, 6}, {5, 7, 6}, // z = +1/2
		{0, 1, 4}, {1, 5, 4}, // y = -1/2
		{2, 6, 3}, {3, 6, 7}, // y = +1/2
		{0, 4, 2}, {2, 4, 6}, // x = -1/2
		{1, 3, 5}, {3, 7, 5}, // x = +1/2
	}
	faces = make([][3]int, len(f))
	for i, face := range f {
		faces[i] = [3]int{face[0] + base, face[1] + base, face[2] + base}
	}
	return
}

func unitCubeMesh() *Mesh {
	m, err := NewMesh(cubeVertices([3]float64{0, 0, 0}), cubeFaces(0))
	if err != nil {
		panic(err)
	}
	return m
}

// twoCubesMesh builds a single mesh holding two disjoint cubes, the second
// offset along x with its own vertex block.
func twoCubesMesh() *Mesh {
	var (
		V     = mat.NewDense(16, 3, nil)
		cube1 = cubeVertices([3]float64{0, 0, 0})
		cube2 = cubeVertices([3]float64{2, 0, 0})
	)
	for i := 0; i < 8; i++ {
		V.SetRow(i, cube1.RawRowView(i))
		V.SetRow(i+8, cube2.RawRowView(i))
	}
	faces := append(cubeFaces(0), cubeFaces(8)...)
	m, err := NewMesh(V, faces)
	if err != nil {
		panic(err)
	}
	return m
}

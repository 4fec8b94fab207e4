package trimesh

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

/*
FromTriangles builds a mesh from a triangle soup, an unindexed list of
triangles given by their corner points. Exactly coincident corner points are
merged into shared vertices so the topology checks can see the connectivity;
points that differ by any amount remain distinct vertices, which typically
yields an open mesh. Winding of each input triangle is preserved.
*/
func FromTriangles(soup [][3][3]float64) (m *Mesh, err error) {
	if len(soup) == 0 {
		return nil, errors.New("triangle soup must be set")
	}
	var (
		index    = make(map[[3]float64]int, 3*len(soup))
		vertices [][3]float64
		faces    = make([][3]int, len(soup))
	)
	for i, tri := range soup {
		for c, pt := range tri {
			vi, ok := index[pt]
			if !ok {
				vi = len(vertices)
				index[pt] = vi
				vertices = append(vertices, pt)
			}
			faces[i][c] = vi
		}
	}
	V := mat.NewDense(len(vertices), 3, nil)
	for i, pt := range vertices {
		V.SetRow(i, pt[:])
	}
	return NewMesh(V, faces)
}

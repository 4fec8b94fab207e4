package trimesh

import (
	"fmt"
	"math"
	"os"
)

func vecNorm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

/*
ReorientFaces rewrites face windings in place so every triangle normal points
outward (right-hand rule). Vertex positions are untouched.

The repair runs per connected component: breadth-first winding propagation
from a seed face makes the component's winding globally consistent, then the
component's signed volume fixes the outward-vs-inward ambiguity. A neighbor
that traverses the shared edge in the same direction as the visited face is
flipped before it is enqueued; on a correctly wound closed mesh neighbors
traverse a shared edge in opposite directions.

Reorientation assumes the mesh has been checked for closedness. If it has
not, a warning-mode check is triggered first. Running on a known-open mesh is
permitted but the outward determination may be unreliable.
*/
func (m *Mesh) ReorientFaces(mode ErrorMode) (err error) {
	if err = mode.validate(); err != nil {
		return
	}
	if m.closed == StateUnknown {
		fmt.Fprintf(os.Stderr,
			"Warning: mesh has not been checked for closedness before faces reorientation, now applying check\n")
		if _, err = m.IsClosed(mode); err != nil {
			return
		}
	}
	var (
		g       = m.Graph()
		flipped = make([]bool, len(m.faces))
		visited = make([]bool, len(m.faces))
	)
	// effDir is the traversal direction of use accounting for a pending flip
	effDir := func(u edgeUse) int64 {
		d := int64(u.dir)
		if flipped[u.face] {
			return -d
		}
		return d
	}
	for _, comp := range g.Components() {
		queue := []int{comp[0]}
		visited[comp[0]] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, de := range faceEdges(m.faces[u]) {
				uses := g.edges[de.GetKey()]
				var self edgeUse
				for _, use := range uses {
					if use.face == u {
						self = use
						break
					}
				}
				for _, other := range uses {
					if other.face == u || visited[other.face] {
						continue
					}
					if effDir(self) == effDir(other) {
						flipped[other.face] = true
					}
					visited[other.face] = true
					queue = append(queue, other.face)
				}
			}
		}
		// apply the propagated flips before the global sign test
		for _, f := range comp {
			if flipped[f] {
				m.faces[f][1], m.faces[f][2] = m.faces[f][2], m.faces[f][1]
				flipped[f] = false
			}
		}
		if m.componentVolume(comp) < 0 {
			// consistent winding but inward, flip the whole component
			for _, f := range comp {
				m.faces[f][1], m.faces[f][2] = m.faces[f][2], m.faces[f][1]
			}
		}
	}
	// directed edges changed, the incidence structure is stale
	m.graph = nil
	m.reoriented = StateTrue
	return
}

/*
componentVolume is the signed volume enclosed by a component's faces,
sum of v0.(v1 x v2)/6. For a closed, consistently wound component the sign
answers the outward question: positive volume means outward winding under the
right-hand rule, which is exactly the convention that makes the interior
solid-angle sum of the surface equal -4 pi.
*/
func (m *Mesh) componentVolume(faces []int) (vol float64) {
	for _, fi := range faces {
		f := m.faces[fi]
		v0 := m.vertices.RawRowView(f[0])
		v1 := m.vertices.RawRowView(f[1])
		v2 := m.vertices.RawRowView(f[2])
		vol += (v0[0]*(v1[1]*v2[2]-v1[2]*v2[1]) -
			v0[1]*(v1[0]*v2[2]-v1[2]*v2[0]) +
			v0[2]*(v1[0]*v2[1]-v1[1]*v2[0])) / 6.
	}
	return
}

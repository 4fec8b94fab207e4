package trimesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMeshConstruction(t *testing.T) {
	// missing inputs abort construction
	{
		_, err := NewMesh(nil, cubeFaces(0))
		assert.Error(t, err)
		_, err = NewMesh(cubeVertices([3]float64{0, 0, 0}), nil)
		assert.Error(t, err)
	}
	// out of bounds face index aborts construction
	{
		_, err := NewMesh(cubeVertices([3]float64{0, 0, 0}), [][3]int{{0, 1, 8}})
		assert.Error(t, err)
		_, err = NewMesh(cubeVertices([3]float64{0, 0, 0}), [][3]int{{0, 1, -1}})
		assert.Error(t, err)
	}
	// malformed vertex shape aborts construction
	{
		_, err := NewMesh(mat.NewDense(4, 2, nil), [][3]int{{0, 1, 2}})
		assert.Error(t, err)
	}
	{
		m := unitCubeMesh()
		assert.Equal(t, 8, m.NumVertices())
		assert.Equal(t, 12, m.NumFaces())
	}
}

func TestMeshStatusLifecycle(t *testing.T) {
	m := unitCubeMesh()
	// all flags start unknown
	assert.Equal(t, Status{StateUnknown, StateUnknown, StateUnknown}, m.Status())

	closed, err := m.IsClosed(ModeRaise)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, StateTrue, m.Status().Closed)
	assert.Equal(t, StateUnknown, m.Status().Connected)

	connected, err := m.IsConnected(ModeRaise)
	require.NoError(t, err)
	assert.True(t, connected)
	assert.Equal(t, StateTrue, m.Status().Connected)

	require.NoError(t, m.ReorientFaces(ModeWarn))
	assert.Equal(t, StateTrue, m.Status().Reoriented)

	// Invalidate is the single reset path
	m.Invalidate()
	assert.Equal(t, Status{StateUnknown, StateUnknown, StateUnknown}, m.Status())

	// invalid mode is rejected at the call boundary
	_, err = m.IsClosed(ErrorMode(9))
	assert.Error(t, err)
	_, err = m.IsConnected(ErrorMode(9))
	assert.Error(t, err)
	assert.Error(t, m.ReorientFaces(ErrorMode(9)))
}

func TestErrorModes(t *testing.T) {
	// open mesh: drop one triangle from the cube
	open, err := NewMesh(cubeVertices([3]float64{0, 0, 0}), cubeFaces(0)[:11])
	require.NoError(t, err)

	closed, err := open.IsClosed(ModeIgnore)
	require.NoError(t, err)
	assert.False(t, closed)

	open.Invalidate()
	closed, err = open.IsClosed(ModeRaise)
	assert.ErrorIs(t, err, ErrOpenMesh)
	assert.False(t, closed)

	// warn continues with best effort results
	open.Invalidate()
	closed, err = open.IsClosed(ModeWarn)
	require.NoError(t, err)
	assert.False(t, closed)

	// disjoint mesh
	two := twoCubesMesh()
	connected, err := two.IsConnected(ModeRaise)
	assert.ErrorIs(t, err, ErrDisjointMesh)
	assert.False(t, connected)
}

func TestNewMeshChecked(t *testing.T) {
	{
		m, err := NewMeshChecked(cubeVertices([3]float64{0, 0, 0}), cubeFaces(0), DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, Status{StateTrue, StateTrue, StateTrue}, m.Status())
	}
	// raise mode propagates the topology error out of construction
	{
		_, err := NewMeshChecked(cubeVertices([3]float64{0, 0, 0}), cubeFaces(0)[:11], Options{
			ValidateClosed:    ModeRaise,
			ValidateConnected: ModeIgnore,
		})
		assert.ErrorIs(t, err, ErrOpenMesh)
	}
	// ignore skips the checks entirely, flags stay unchecked
	{
		m, err := NewMeshChecked(cubeVertices([3]float64{0, 0, 0}), cubeFaces(0)[:11], Options{
			ValidateClosed:    ModeIgnore,
			ValidateConnected: ModeIgnore,
		})
		require.NoError(t, err)
		assert.Equal(t, StateUnknown, m.Status().Closed)
		assert.Equal(t, StateUnknown, m.Status().Connected)
	}
}

func TestCentroid(t *testing.T) {
	m := unitCubeMesh()
	c := m.Centroid()
	assert.InDeltaSlice(t, []float64{0, 0, 0}, c[:], 1.e-14)

	off, err := NewMesh(cubeVertices([3]float64{2, -1, 0.5}), cubeFaces(0))
	require.NoError(t, err)
	c = off.Centroid()
	assert.InDeltaSlice(t, []float64{2, -1, 0.5}, c[:], 1.e-14)
}

func TestParseErrorMode(t *testing.T) {
	for s, want := range map[string]ErrorMode{
		"warn": ModeWarn, "Raise": ModeRaise, "IGNORE": ModeIgnore,
	} {
		got, err := ParseErrorMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseErrorMode("panic")
	assert.Error(t, err)
}

package magfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// reference values computed with the published surface-charge formulas
// (Guptasarma 1999) at full double precision.
func TestTriangleFieldReference(t *testing.T) {
	var (
		obs = mat.NewDense(2, 3, []float64{
			-0.1, 0.2, 0.1,
			0.1, 0.2, 0.1,
		})
		v0 = mat.NewDense(2, 3, []float64{
			-1, 0, 0,
			-1, 0, 0,
		})
		v1 = mat.NewDense(2, 3, []float64{
			1, -1, 0,
			1, -1, 0,
		})
		v2 = mat.NewDense(2, 3, []float64{
			1, 1, 0,
			1, 1, 0,
		})
		pol = mat.NewDense(2, 3, []float64{
			0.22, 0.33, 0.44,
			0.33, 0.44, 0.55,
		})
	)
	B := TriangleField(FieldB, obs, v0, v1, v2, pol)
	assert.InDeltaSlice(t, []float64{-0.05480869975828607, 0.053509549299867586, 0.17683831674465572},
		B.RawRowView(0), 1.e-13)
	assert.InDeltaSlice(t, []float64{-0.04252323442748821, 0.05292105799248047, 0.23092367634992209},
		B.RawRowView(1), 1.e-13)

	// H is the same surface charge field in A/m
	H := TriangleField(FieldH, obs, v0, v1, v2, pol)
	assert.InDeltaSlice(t, []float64{-43615.37745485399, 42581.546368466974, 140723.46118981123},
		H.RawRowView(0), 1.e-7)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, B.At(i, j)/MU0, H.At(i, j), math.Abs(H.At(i, j))*1.e-14)
		}
	}
}

func TestTriangleFieldDegeneracies(t *testing.T) {
	var (
		v0  = singleRow(0, 0, 0)
		v1  = singleRow(1, 0, 0)
		v2  = singleRow(0, 1, 0)
		pol = singleRow(0.1, 0.2, 0.3)
	)
	// observer exactly on a corner: NaN row, no panic
	{
		B := TriangleField(FieldB, singleRow(0, 0, 0), v0, v1, v2, pol)
		for _, val := range B.RawRowView(0) {
			assert.True(t, math.IsNaN(val))
		}
	}
	// observer on an edge: finite, normal component exactly 0
	{
		B := TriangleField(FieldB, singleRow(0.5, 0, 0), v0, v1, v2, pol)
		row := B.RawRowView(0)
		assert.False(t, math.IsNaN(row[0]))
		assert.Equal(t, 0., row[2])
	}
	// observer in the plane outside the triangle: normal component exactly 0
	{
		B := TriangleField(FieldB, singleRow(2, 2, 0), v0, v1, v2, pol)
		row := B.RawRowView(0)
		assert.InDelta(t, 0.0015021683691582228, row[0], 1.e-15)
		assert.InDelta(t, 0.0015021683691582148, row[1], 1.e-15)
		assert.Equal(t, 0., row[2])
	}
	// degenerate zero-area triangle: NaN row
	{
		B := TriangleField(FieldB, singleRow(3, 4, 5),
			singleRow(0, 0, 0), singleRow(1, 1, 1), singleRow(2, 2, 2), pol)
		for _, val := range B.RawRowView(0) {
			assert.True(t, math.IsNaN(val))
		}
	}
	// the degenerate rows stay confined to their batch rows
	{
		obs := mat.NewDense(2, 3, []float64{
			0, 0, 0, // corner
			0.3, 0.3, 2, // regular
		})
		mk := func(p [3]float64) *mat.Dense {
			return mat.NewDense(2, 3, []float64{p[0], p[1], p[2], p[0], p[1], p[2]})
		}
		B := TriangleField(FieldB, obs,
			mk([3]float64{0, 0, 0}), mk([3]float64{1, 0, 0}), mk([3]float64{0, 1, 0}),
			mk([3]float64{0.1, 0.2, 0.3}))
		assert.True(t, math.IsNaN(B.At(0, 0)))
		for _, val := range B.RawRowView(1) {
			assert.False(t, math.IsNaN(val))
		}
	}
}

func TestTriangleFieldPolarizationProjection(t *testing.T) {
	// polarization parallel to the triangle plane carries no surface charge
	var (
		v0  = singleRow(0, 0, 0)
		v1  = singleRow(1, 0, 0)
		v2  = singleRow(0, 1, 0)
		pol = singleRow(0.7, -0.3, 0)
	)
	B := TriangleField(FieldB, singleRow(0.2, 0.1, 1.5), v0, v1, v2, pol)
	assert.InDeltaSlice(t, []float64{0, 0, 0}, B.RawRowView(0), 1.e-15)
}

func TestTriangleFieldShapeMismatchPanics(t *testing.T) {
	var (
		one = singleRow(0, 0, 0)
		two = mat.NewDense(2, 3, nil)
	)
	require.Panics(t, func() {
		TriangleField(FieldB, one, one, one, two, one)
	})
}

func TestParseFieldKind(t *testing.T) {
	k, err := ParseFieldKind("B")
	require.NoError(t, err)
	assert.Equal(t, FieldB, k)
	k, err = ParseFieldKind("h")
	require.NoError(t, err)
	assert.Equal(t, FieldH, k)
	_, err = ParseFieldKind("X")
	assert.Error(t, err)
}

package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmat "gonum.org/v1/gonum/mat"
)

func TestInvertAgainstGonum(t *testing.T) {
	vals := []float64{
		1, 3, 5, 2,
		2, 4, 7, 1,
		1, 1, 0, 3,
		0, 2, 1, 4,
	}

	m := NewMatrix(append([]float64{}, vals...), 4, 4)
	luf, err := m.LU()
	require.NoError(t, err)

	inv := NewZeroMatrix(4, 4)
	luf.Invert(inv)

	var want gmat.Dense
	require.NoError(t, want.Inverse(gmat.NewDense(4, 4, vals)))

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want.At(i, j), inv.Vals[i*4+j], 1e-12)
		}
	}
}

func TestDeterminantAgainstGonum(t *testing.T) {
	vals := []float64{
		2, 1, 0,
		-1, 3, 2,
		0, 1, 1,
	}

	m := NewMatrix(append([]float64{}, vals...), 3, 3)
	luf, err := m.LU()
	require.NoError(t, err)

	assert.InDelta(t, gmat.Det(gmat.NewDense(3, 3, vals)),
		luf.Determinant(), 1e-12)
}

func TestInvertTimesSelfIsIdentity(t *testing.T) {
	vals := []float64{
		4, 1, 2,
		1, 5, 1,
		2, 1, 6,
	}

	m := NewMatrix(vals, 3, 3)
	luf, err := m.LU()
	require.NoError(t, err)

	inv := NewZeroMatrix(3, 3)
	luf.Invert(inv)

	prod := NewZeroMatrix(3, 3)
	m.Mul(inv, prod)

	id := Identity(3)
	for i := range id.Vals {
		assert.InDelta(t, id.Vals[i], prod.Vals[i], 1e-12)
	}
}

func TestSingularMatrixErrors(t *testing.T) {
	m := NewMatrix([]float64{
		1, 2,
		2, 4,
	}, 2, 2)
	_, err := m.LU()
	assert.Error(t, err)

	m = NewMatrix([]float64{
		0, 0,
		1, 1,
	}, 2, 2)
	_, err = m.LU()
	assert.Error(t, err)
}

func TestMulVec(t *testing.T) {
	m := NewMatrix([]float64{
		1, 2, 3,
		4, 5, 6,
	}, 3, 2)

	out := make([]float64, 2)
	m.MulVec([]float64{1, 1, 2}, out)

	assert.Equal(t, []float64{9, 21}, out)
}

func TestScaleDiag(t *testing.T) {
	m := NewMatrix([]float64{
		1, 2,
		3, 4,
	}, 2, 2)

	out := NewZeroMatrix(2, 2)
	m.ScaleDiag([]float64{2, 10}, out)

	assert.Equal(t, []float64{2, 4, 30, 40}, out.Vals)
}

func TestSolveVector(t *testing.T) {
	m := NewMatrix([]float64{
		3, 1,
		1, 2,
	}, 2, 2)
	luf, err := m.LU()
	require.NoError(t, err)

	xs := make([]float64, 2)
	luf.SolveVector([]float64{9, 8}, xs)

	assert.InDelta(t, 2, xs[0], 1e-14)
	assert.InDelta(t, 3, xs[1], 1e-14)
}

/*package mat implements the small dense-matrix operations needed to
assemble moment-space collision operators: multiplication and LU-based
inversion of fixed-size square matrices.

Dimension mismatches are programmer errors and panic. Singularity is a
data property of the matrix being factored and is returned as an error
so setup code can report it.
*/
package mat

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major matrix backed by a flat slice.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// LUFactors holds the pivoted LU factorization of a square matrix.
type LUFactors struct {
	lu    Matrix
	pivot []int
	d     float64
}

func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// NewZeroMatrix returns a width x height matrix of zeros.
func NewZeroMatrix(width, height int) *Matrix {
	return NewMatrix(make([]float64, width*height), width, height)
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewZeroMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Vals[i*n+i] = 1
	}
	return m
}

// Mul sets out = m * b. out must not alias m or b.
func (m *Matrix) Mul(b, out *Matrix) {
	if m.Width != b.Height {
		panic("m.Width != b.Height")
	} else if out.Height != m.Height || out.Width != b.Width {
		panic("out dimensions do not match m * b.")
	}

	n, w := m.Width, b.Width
	for i := 0; i < m.Height; i++ {
		iOffset := i * n
		outOffset := i * w
		for j := 0; j < w; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += m.Vals[iOffset+k] * b.Vals[k*w+j]
			}
			out.Vals[outOffset+j] = sum
		}
	}
}

// MulVec sets out = m * xs. out must not alias xs.
func (m *Matrix) MulVec(xs, out []float64) {
	if m.Width != len(xs) {
		panic("m.Width != len(xs)")
	} else if m.Height != len(out) {
		panic("m.Height != len(out)")
	}

	for i := 0; i < m.Height; i++ {
		iOffset := i * m.Width
		sum := 0.0
		for j := 0; j < m.Width; j++ {
			sum += m.Vals[iOffset+j] * xs[j]
		}
		out[i] = sum
	}
}

// ScaleDiag sets out = diag(ds) * m, scaling row i of m by ds[i].
func (m *Matrix) ScaleDiag(ds []float64, out *Matrix) {
	if m.Height != len(ds) {
		panic("m.Height != len(ds)")
	} else if out.Width != m.Width || out.Height != m.Height {
		panic("out dimensions do not match m.")
	}

	for i := 0; i < m.Height; i++ {
		iOffset := i * m.Width
		for j := 0; j < m.Width; j++ {
			out.Vals[iOffset+j] = ds[i] * m.Vals[iOffset+j]
		}
	}
}

// LU factors m into pivoted lower and upper triangular parts. An error
// is returned if m is singular.
func (m *Matrix) LU() (*LUFactors, error) {
	if m.Width != m.Height {
		panic("m is non-square.")
	}

	n := m.Width
	luf := &LUFactors{
		lu:    Matrix{make([]float64, n*n), n, n},
		pivot: make([]int, n),
		d:     1,
	}

	lu := luf.lu.Vals
	copy(lu, m.Vals)

	scale := make([]float64, n)
	for i := 0; i < n; i++ {
		iOffset := i * n
		max := 0.0
		for j := 0; j < n; j++ {
			tmp := math.Abs(lu[iOffset+j])
			if tmp > max {
				max = tmp
			}
		}
		if max == 0 {
			return nil, fmt.Errorf("matrix is singular: row %d is zero", i)
		}
		scale[i] = 1 / max
	}

	for k := 0; k < n; k++ {
		// Partial pivoting on the scaled column maximum.
		max, maxi := 0.0, k
		for i := k; i < n; i++ {
			tmp := scale[i] * math.Abs(lu[i*n+k])
			if tmp > max {
				max = tmp
				maxi = i
			}
		}

		if k != maxi {
			kOffset, maxiOffset := n*k, n*maxi
			for j := 0; j < n; j++ {
				idx1, idx2 := kOffset+j, maxiOffset+j
				lu[idx1], lu[idx2] = lu[idx2], lu[idx1]
			}
			luf.d = -luf.d
			scale[maxi] = scale[k]
		}
		luf.pivot[k] = maxi

		if lu[n*k+k] == 0 {
			return nil, fmt.Errorf("matrix is singular at pivot %d", k)
		}

		kOffset := k * n
		for i := k + 1; i < n; i++ {
			iOffset := i * n
			lu[iOffset+k] /= lu[kOffset+k]
			tmp := lu[iOffset+k]
			for j := k + 1; j < n; j++ {
				lu[iOffset+j] -= tmp * lu[kOffset+j]
			}
		}
	}

	return luf, nil
}

// SolveVector solves M * xs = bs for xs.
//
// bs and xs may point to the same physical memory.
func (luf *LUFactors) SolveVector(bs, xs []float64) {
	n := luf.lu.Width
	if n != len(bs) {
		panic("len(bs) != luf.Width")
	} else if n != len(xs) {
		panic("len(xs) != luf.Width")
	}

	// A x = b -> (L U) x = b -> L (U x) = b -> L y = b
	ys := xs
	copy(ys, bs)
	lu := luf.lu.Vals

	// Solve L * y = b for y, applying the pivot permutation as we go.
	for i := 0; i < n; i++ {
		piv := luf.pivot[i]
		sum := ys[piv]
		ys[piv] = ys[i]

		iOffset := i * n
		for j := 0; j < i; j++ {
			sum -= lu[iOffset+j] * ys[j]
		}
		ys[i] = sum
	}

	// Solve U * x = y for x.
	for i := n - 1; i >= 0; i-- {
		sum := ys[i]
		iOffset := i * n
		for j := i + 1; j < n; j++ {
			sum -= lu[iOffset+j] * xs[j]
		}
		xs[i] = sum / lu[iOffset+i]
	}
}

// Invert writes the inverse of the factored matrix into out.
func (luf *LUFactors) Invert(out *Matrix) {
	n := luf.lu.Width
	if out.Width != out.Height {
		panic("out matrix is non-square.")
	} else if n != out.Width {
		panic("out matrix different size than factored matrix.")
	}

	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			col[i] = 0
		}
		col[j] = 1
		luf.SolveVector(col, col)
		for i := 0; i < n; i++ {
			out.Vals[i*n+j] = col[i]
		}
	}
}

// Determinant returns the determinant of the factored matrix.
func (luf *LUFactors) Determinant() float64 {
	d := luf.d
	lu := luf.lu.Vals
	n := luf.lu.Width

	for i := 0; i < n; i++ {
		d *= lu[i*n+i]
	}
	return d
}

package fluid

import (
	"fmt"

	"github.com/phil-mansfield/golbm/lattice"
	"github.com/phil-mansfield/golbm/mat"
)

// RelaxationRates holds the free diagonal entries of the MRT
// relaxation matrix, the rates of the non-hydrodynamic moments. They
// do not affect the viscosity, only the damping of ghost modes, and
// are tunable stability parameters in (0, 2). The shear-related rates
// are not free: they are pinned to the BGK rate derived from the
// viscosity.
type RelaxationRates struct {
	S1, S2, S4, S10, S16 float64
}

// DefaultRates returns the literature values of the free rates.
func DefaultRates() RelaxationRates {
	return RelaxationRates{S1: 1.19, S2: 1.4, S4: 1.2, S10: 1.4, S16: 1.98}
}

// diagonal expands the rates into the 19-entry moment-space diagonal.
// The conserved moments (density and momentum) relax at rate zero, and
// the five second-order moments relax at omega.
func (r RelaxationRates) diagonal(omega float64) [lattice.Q]float64 {
	return [lattice.Q]float64{
		0, r.S1, r.S2,
		0, r.S4, 0, r.S4, 0, r.S4,
		omega, r.S10, omega, r.S10,
		omega, omega, omega,
		r.S16, r.S16, r.S16,
	}
}

// MRT is the multiple-relaxation-time collision operator. It applies
// the dense matrix Shat = M^-1 S M to the deviation from equilibrium,
// damping each moment at its own rate.
type MRT struct {
	shat *mat.Matrix
}

// NewMRT builds the fused MRT collision operator for the given shear
// relaxation rate and free rates. All rates must lie in (0, 2).
func NewMRT(omega float64, rates RelaxationRates) (*MRT, error) {
	for _, s := range []float64{omega, rates.S1, rates.S2, rates.S4,
		rates.S10, rates.S16} {
		if s <= 0 || s >= 2 {
			return nil, fmt.Errorf(
				"relaxation rate %g outside the stable range (0, 2)", s,
			)
		}
	}

	diag := rates.diagonal(omega)
	return NewMRTDiagonal(diag[:])
}

// NewMRTDiagonal builds the MRT operator from an explicit 19-entry
// moment-space diagonal. Setting every entry to omega makes the
// operator numerically equal to omega times the identity, the BGK
// degenerate case.
func NewMRTDiagonal(s []float64) (*MRT, error) {
	if len(s) != lattice.Q {
		panic("len(s) != lattice.Q")
	}

	m := mat.NewMatrix(lattice.MomentMatrix(), lattice.Q, lattice.Q)
	luf, err := m.LU()
	if err != nil {
		return nil, fmt.Errorf("moment matrix is not invertible: %v", err)
	}

	minv := mat.NewZeroMatrix(lattice.Q, lattice.Q)
	luf.Invert(minv)

	sm := mat.NewZeroMatrix(lattice.Q, lattice.Q)
	m.ScaleDiag(s, sm)

	shat := mat.NewZeroMatrix(lattice.Q, lattice.Q)
	minv.Mul(sm, shat)

	return &MRT{shat: shat}, nil
}

func (m *MRT) Collide(pop, feq []float64) {
	var dev, relaxed [lattice.Q]float64
	for i := 0; i < lattice.Q; i++ {
		dev[i] = pop[i] - feq[i]
	}
	m.shat.MulVec(dev[:], relaxed[:])
	for i := 0; i < lattice.Q; i++ {
		pop[i] -= relaxed[i]
	}
}

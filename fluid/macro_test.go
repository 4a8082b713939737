package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/golbm/lattice"
)

func TestEquilibriumAtRest(t *testing.T) {
	var feq [lattice.Q]float64
	Equilibrium(2.5, [3]float64{}, feq[:])

	for i := 0; i < lattice.Q; i++ {
		assert.InDelta(t, 2.5*lattice.Weights[i], feq[i], 1e-15)
	}
}

func TestEquilibriumMomentsRecoverInputs(t *testing.T) {
	rho := 1.1
	u := [3]float64{0.05, -0.02, 0.01}

	var feq [lattice.Q]float64
	Equilibrium(rho, u, feq[:])

	gotRho := Density(feq[:])
	assert.InDelta(t, rho, gotRho, 1e-14)

	gotU := Velocity(feq[:], gotRho)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, u[k], gotU[k], 1e-14)
	}
}

func TestOmegaViscosityRoundTrip(t *testing.T) {
	for _, nu := range []float64{0.001, 0.02, 0.5} {
		omega := Omega(nu)
		assert.True(t, omega > 0 && omega < 2)
		assert.InDelta(t, nu, Viscosity(omega), 1e-14)
	}
}

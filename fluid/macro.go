package fluid

import (
	"github.com/phil-mansfield/golbm/lattice"
)

// Omega converts a kinematic viscosity to the BGK relaxation rate,
// omega = 1 / (3 nu + 1/2). Stable configurations give omega in the
// open interval (0, 2).
func Omega(viscosity float64) float64 {
	return 1 / (3*viscosity + 0.5)
}

// Viscosity is the inverse of Omega.
func Viscosity(omega float64) float64 {
	return (1/omega - 0.5) / 3
}

// Density returns the local density, the zeroth moment of pop.
func Density(pop []float64) float64 {
	sum := 0.0
	for i := 0; i < lattice.Q; i++ {
		sum += pop[i]
	}
	return sum
}

// Velocity returns the local velocity, the first moment of pop divided
// by rho.
func Velocity(pop []float64, rho float64) [3]float64 {
	var u [3]float64
	for i := 0; i < lattice.Q; i++ {
		e := &lattice.Velocities[i]
		u[0] += pop[i] * float64(e[0])
		u[1] += pop[i] * float64(e[1])
		u[2] += pop[i] * float64(e[2])
	}
	u[0] /= rho
	u[1] /= rho
	u[2] /= rho
	return u
}

// Equilibrium writes the second-order truncated Maxwell-Boltzmann
// distribution for (rho, u) into out,
//
//	feq_i = w_i rho (1 + 3 e_i.u + 4.5 (e_i.u)^2 - 1.5 u.u).
//
// The coefficients 3, 4.5 and 1.5 encode the lattice speed of sound
// cs^2 = 1/3 and fix the accuracy order of the scheme; they must not
// be changed.
func Equilibrium(rho float64, u [3]float64, out []float64) {
	usq := 1.5 * (u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
	for i := 0; i < lattice.Q; i++ {
		e := &lattice.Velocities[i]
		eu := float64(e[0])*u[0] + float64(e[1])*u[1] + float64(e[2])*u[2]
		out[i] = lattice.Weights[i] * rho * (1 + 3*eu + 4.5*eu*eu - usq)
	}
}

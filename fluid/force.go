package fluid

import (
	"math"

	"github.com/phil-mansfield/golbm/lattice"
)

// link is a (cell, direction) pair crossing the obstacle surface.
type link struct {
	cell, dir int
}

// MomentumExchange estimates the force an obstacle exerts on the flow
// by summing the momentum carried across its surface. The surface link
// tables depend only on the fixed obstacle geometry, so they are built
// once at setup.
type MomentumExchange struct {
	// entering pairs sit on fluid cells whose direction points into a
	// solid neighbor; leaving pairs sit on solid cells whose direction
	// points into a fluid neighbor.
	entering, leaving []link
}

func NewMomentumExchange(nx, ny, nz int, mask []bool) *MomentumExchange {
	m := &MomentumExchange{}

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				c := x + nx*(y+ny*z)
				for i := 1; i < lattice.Q; i++ {
					e := &lattice.Velocities[i]
					n := wrap(x+e[0], nx) +
						nx*(wrap(y+e[1], ny)+ny*wrap(z+e[2], nz))

					if !mask[c] && mask[n] {
						m.entering = append(m.entering, link{c, i})
					} else if mask[c] && !mask[n] {
						m.leaving = append(m.leaving, link{c, i})
					}
				}
			}
		}
	}
	return m
}

// Force returns the instantaneous momentum-exchange force on the
// obstacle: populations about to enter the surface contribute their
// own momentum, populations bounced back out contribute the reflected
// momentum.
func (m *MomentumExchange) Force(f *Field) [3]float64 {
	var force [3]float64

	for _, l := range m.entering {
		p := f.AtCell(l.cell)[l.dir]
		e := &lattice.Velocities[l.dir]
		force[0] += p * float64(e[0])
		force[1] += p * float64(e[1])
		force[2] += p * float64(e[2])
	}
	for _, l := range m.leaving {
		p := f.AtCell(l.cell)[l.dir]
		e := &lattice.Velocities[lattice.Opposite[l.dir]]
		force[0] += p * float64(e[0])
		force[1] += p * float64(e[1])
		force[2] += p * float64(e[2])
	}
	return force
}

// DragCoefficient normalizes a streamwise force by the reference
// density, velocity and frontal area: cd = 2 |fx| / (rho u^2 A).
func DragCoefficient(fx, rhoRef, uRef, area float64) float64 {
	return 2 * math.Abs(fx) / (rhoRef * uRef * uRef * area)
}

// FrontalArea returns the obstacle's cross section as seen by the
// flow: the number of (y, z) columns containing at least one solid
// cell.
func FrontalArea(nx, ny, nz int, mask []bool) float64 {
	area := 0
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				if mask[x+nx*(y+ny*z)] {
					area++
					break
				}
			}
		}
	}
	return float64(area)
}

// Stress returns the local deviatoric stress tensor via the
// Chapman-Enskog relation,
//
//	sigma = (1 - omega/2) sum_i e_i (x) e_i f_i^neq,
//
// where f^neq is the deviation of pop from its own equilibrium. No
// finite differences are involved; the tensor is local to the cell.
func Stress(pop []float64, omega float64) [3][3]float64 {
	rho := Density(pop)
	u := Velocity(pop, rho)

	var feq [lattice.Q]float64
	Equilibrium(rho, u, feq[:])

	var sigma [3][3]float64
	for i := 0; i < lattice.Q; i++ {
		neq := pop[i] - feq[i]
		e := &lattice.Velocities[i]
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				sigma[a][b] += float64(e[a]) * float64(e[b]) * neq
			}
		}
	}

	scale := 1 - omega/2
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			sigma[a][b] *= scale
		}
	}
	return sigma
}

// StrainRate converts a stress tensor from Stress into a strain-rate
// tensor by dividing by 2 rho nu.
func StrainRate(sigma [3][3]float64, rho, viscosity float64) [3][3]float64 {
	var rate [3][3]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			rate[a][b] = sigma[a][b] / (2 * rho * viscosity)
		}
	}
	return rate
}

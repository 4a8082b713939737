package fluid

import (
	"github.com/phil-mansfield/golbm/lattice"
)

// outflow applies the zero-gradient condition at the x = nx-1 plane:
// every population travelling toward -x is copied from the
// second-to-last plane. This runs before any moments are taken, since
// it changes the density and velocity of the last plane.
func (s *Solver) outflow() {
	nx := s.f.Nx
	for z := 0; z < s.f.Nz; z++ {
		for y := 0; y < s.f.Ny; y++ {
			dst := s.f.At(nx-1, y, z)
			src := s.f.At(nx-2, y, z)
			for _, i := range lattice.Left {
				dst[i] = src[i]
			}
		}
	}
}

// inflow applies the Zou/He Dirichlet condition at the x = 0 plane.
// The velocity is forced to the prescribed profile, the density is
// reconstructed from the populations that streaming left behind,
//
//	rho = (sum_lateral + 2 sum_outward) / (1 - u_x),
//
// and the populations pointing into the domain are overwritten with
// the equilibrium of the reconstructed density and prescribed
// velocity. The 1 - u_x denominator is validated at setup.
func (s *Solver) applyInflow() {
	var feq [lattice.Q]float64
	for z := 0; z < s.f.Nz; z++ {
		for y := 0; y < s.f.Ny; y++ {
			if s.mask != nil && s.mask[s.f.CellIndex(0, y, z)] {
				continue
			}

			u := s.inflowAt(y, z)
			pop := s.f.At(0, y, z)

			lat, out := 0.0, 0.0
			for _, i := range lattice.Lateral {
				lat += pop[i]
			}
			for _, i := range lattice.Left {
				out += pop[i]
			}
			rho := (lat + 2*out) / (1 - u[0])

			Equilibrium(rho, u, feq[:])
			for _, i := range lattice.Right {
				pop[i] = feq[i]
			}
		}
	}
}

// inflowAt returns the prescribed inlet velocity for inlet cell (y, z).
func (s *Solver) inflowAt(y, z int) [3]float64 {
	base := 3 * (y + s.f.Ny*z)
	return [3]float64{
		s.inflow[base], s.inflow[base+1], s.inflow[base+2],
	}
}

// UniformInflow returns an inlet velocity profile with the same
// streamwise velocity at every inlet cell. The profile is 3 values per
// cell of the ny x nz inlet plane, y-major.
func UniformInflow(ux float64, ny, nz int) []float64 {
	prof := make([]float64, 3*ny*nz)
	for i := 0; i < ny*nz; i++ {
		prof[3*i] = ux
	}
	return prof
}

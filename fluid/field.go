/*package fluid implements a single-phase isothermal lattice Boltzmann
solver on the D3Q19 lattice: population fields, the macroscopic and
equilibrium computations, BGK and MRT collision, Zou/He inflow,
zero-gradient outflow, full-way bounce-back obstacles, streaming, and
momentum-exchange force and stress estimation.

The population field is the only persistent state. One call to
Solver.Step advances it by a single time step; everything else is
derived from it on demand.
*/
package fluid

import (
	"github.com/phil-mansfield/golbm/lattice"
)

// Field stores one population per cell and lattice direction. The 19
// populations of a cell are contiguous, and cells are laid out in
// x-major order: cell (x, y, z) lives at index x + nx*(y + ny*z).
type Field struct {
	Nx, Ny, Nz int
	Data       []float64
}

func NewField(nx, ny, nz int) *Field {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		panic("field dimensions must be positive.")
	}
	return &Field{
		Nx: nx, Ny: ny, Nz: nz,
		Data: make([]float64, lattice.Q*nx*ny*nz),
	}
}

// Cells returns the number of cells in the field.
func (f *Field) Cells() int { return f.Nx * f.Ny * f.Nz }

// CellIndex returns the flat cell index of (x, y, z).
func (f *Field) CellIndex(x, y, z int) int {
	return x + f.Nx*(y+f.Ny*z)
}

// At returns the populations of cell (x, y, z) as a slice sharing the
// field's backing array.
func (f *Field) At(x, y, z int) []float64 {
	base := lattice.Q * f.CellIndex(x, y, z)
	return f.Data[base : base+lattice.Q : base+lattice.Q]
}

// AtCell is At for a precomputed flat cell index.
func (f *Field) AtCell(c int) []float64 {
	base := lattice.Q * c
	return f.Data[base : base+lattice.Q : base+lattice.Q]
}

// SetEquilibrium fills every cell with the equilibrium distribution
// for the given uniform density and velocity.
func (f *Field) SetEquilibrium(rho float64, u [3]float64) {
	var feq [lattice.Q]float64
	Equilibrium(rho, u, feq[:])
	for c := 0; c < f.Cells(); c++ {
		copy(f.AtCell(c), feq[:])
	}
}

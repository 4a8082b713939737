package fluid

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/golbm/lattice"
)

// Options configures a Solver. Nx, Ny, Nz and Viscosity are required;
// the zero value of every other field is usable.
type Options struct {
	Nx, Ny, Nz int
	Viscosity  float64

	// Mask marks solid cells. nil means an empty domain. Its length
	// must be Nx*Ny*Nz, indexed like Field cells.
	Mask []bool

	// Inflow is the inlet velocity profile, 3 values per cell of the
	// ny x nz inlet plane. nil defaults to a uniform profile with
	// SeedVelocity. Ignored when Periodic is set.
	Inflow []float64

	// Periodic disables the inflow and outflow handlers and lets the
	// streamwise axis wrap, turning the domain into a closed box.
	Periodic bool

	// Collider overrides the collision strategy. nil defaults to BGK
	// at the rate implied by Viscosity.
	Collider Collider

	// Workers is the number of goroutines used for the cell-local
	// passes. Values below 1 mean 1.
	Workers int

	// SeedDensity and SeedVelocity define the uniform equilibrium the
	// population field starts from. A zero SeedDensity means 1.
	SeedDensity  float64
	SeedVelocity [3]float64
}

// Solver advances a population field through lattice Boltzmann time
// steps. It owns two fields and alternates between them: the
// cell-local collision pass writes the post buffer, and streaming
// writes back into the front buffer. A step is committed only when
// both passes finish, so no cross-step state can leak.
type Solver struct {
	f, post *Field
	mask    []bool
	inflow  []float64

	omega    float64
	col      Collider
	periodic bool
	workers  int
	step     int

	exch *MomentumExchange
}

// NewSolver validates opt, builds the precomputed obstacle link
// tables, and returns a solver whose field is seeded with the uniform
// equilibrium distribution.
func NewSolver(opt *Options) (*Solver, error) {
	if opt.Nx <= 0 || opt.Ny <= 0 || opt.Nz <= 0 {
		return nil, fmt.Errorf(
			"grid dimensions (%d, %d, %d) must all be positive",
			opt.Nx, opt.Ny, opt.Nz,
		)
	}
	if !opt.Periodic && opt.Nx < 3 {
		return nil, fmt.Errorf(
			"Nx must be at least 3 so the outflow plane has an "+
				"upstream neighbor, but is %d", opt.Nx,
		)
	}
	if opt.Viscosity <= 0 {
		return nil, fmt.Errorf(
			"viscosity must be positive, but is %g", opt.Viscosity,
		)
	}
	omega := Omega(opt.Viscosity)
	if omega <= 0 || omega >= 2 {
		return nil, fmt.Errorf(
			"viscosity %g gives relaxation rate %g outside (0, 2)",
			opt.Viscosity, omega,
		)
	}

	cells := opt.Nx * opt.Ny * opt.Nz
	if opt.Mask != nil && len(opt.Mask) != cells {
		return nil, fmt.Errorf(
			"obstacle mask has %d cells, but the grid has %d",
			len(opt.Mask), cells,
		)
	}

	rho := opt.SeedDensity
	if rho == 0 {
		rho = 1
	}
	if rho < 0 {
		return nil, fmt.Errorf("seed density must be positive, but is %g", rho)
	}

	inflow := opt.Inflow
	if inflow == nil {
		inflow = UniformInflow(opt.SeedVelocity[0], opt.Ny, opt.Nz)
	}
	if len(inflow) != 3*opt.Ny*opt.Nz {
		return nil, fmt.Errorf(
			"inflow profile has %d values, but the inlet plane needs %d",
			len(inflow), 3*opt.Ny*opt.Nz,
		)
	}
	if !opt.Periodic {
		for i := 0; i < opt.Ny*opt.Nz; i++ {
			if ux := inflow[3*i]; 1-ux <= 0 {
				return nil, fmt.Errorf(
					"inflow velocity u_x = %g at inlet cell %d makes "+
						"the Zou/He denominator 1 - u_x non-positive", ux, i,
				)
			}
		}
	}

	col := opt.Collider
	if col == nil {
		col = BGK{Omega: omega}
	}

	workers := opt.Workers
	if workers < 1 {
		workers = 1
	}

	s := &Solver{
		f:        NewField(opt.Nx, opt.Ny, opt.Nz),
		post:     NewField(opt.Nx, opt.Ny, opt.Nz),
		mask:     opt.Mask,
		inflow:   inflow,
		omega:    omega,
		col:      col,
		periodic: opt.Periodic,
		workers:  workers,
	}
	s.f.SetEquilibrium(rho, opt.SeedVelocity)

	if opt.Mask != nil {
		s.exch = NewMomentumExchange(opt.Nx, opt.Ny, opt.Nz, opt.Mask)
	}

	return s, nil
}

// Field returns the live population field. Callers may read it
// between steps and may overwrite it to impose initial conditions.
func (s *Solver) Field() *Field { return s.f }

// StepCount returns the number of committed steps.
func (s *Solver) StepCount() int { return s.step }

// Omega returns the shear relaxation rate in use.
func (s *Solver) Omega() float64 { return s.omega }

// Exchange returns the momentum-exchange estimator, or nil if the
// solver has no obstacle mask.
func (s *Solver) Exchange() *MomentumExchange { return s.exch }

// DivergenceError reports a cell whose density stopped being a
// positive finite number. The run must not continue past it.
type DivergenceError struct {
	Step, X, Y, Z int
	Density       float64
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf(
		"solution diverged on step %d: density %g at cell (%d, %d, %d)",
		e.Step, e.Density, e.X, e.Y, e.Z,
	)
}

// Step advances the field by one time step: boundary pre-treatment,
// then the fused moment/collision/bounce-back pass, then streaming.
// On a divergence error the field is left as-is and must not be
// stepped again.
func (s *Solver) Step() error {
	if !s.periodic {
		s.outflow()
		s.applyInflow()
	}

	if err := s.parallel(s.collideSlab); err != nil {
		return err
	}

	// Streaming must read a complete post-collision snapshot, so it
	// only starts after every collision worker is done.
	if err := s.parallel(func(zLo, zHi int) error {
		streamSlab(s.post, s.f, zLo, zHi)
		return nil
	}); err != nil {
		return err
	}

	s.step++
	return nil
}

// parallel runs fn over z slabs on the solver's workers and returns
// the first error any of them produced.
func (s *Solver) parallel(fn func(zLo, zHi int) error) error {
	if s.workers == 1 {
		return fn(0, s.f.Nz)
	}

	out := make(chan error, s.workers)
	for id := 0; id < s.workers; id++ {
		go func(id int) {
			zLo := id * s.f.Nz / s.workers
			zHi := (id + 1) * s.f.Nz / s.workers
			out <- fn(zLo, zHi)
		}(id)
	}

	var err error
	for i := 0; i < s.workers; i++ {
		if e := <-out; e != nil && err == nil {
			err = e
		}
	}
	return err
}

// collideSlab runs the cell-local part of the step for the z planes in
// [zLo, zHi): moments, equilibrium and collision for fluid cells, and
// bounce-back for solid cells. Results go to the post buffer; the
// front buffer is left untouched so solid cells can reflect their
// pre-collision populations.
func (s *Solver) collideSlab(zLo, zHi int) error {
	var feq [lattice.Q]float64
	for z := zLo; z < zHi; z++ {
		for y := 0; y < s.f.Ny; y++ {
			for x := 0; x < s.f.Nx; x++ {
				c := s.f.CellIndex(x, y, z)
				pop := s.f.AtCell(c)
				dst := s.post.AtCell(c)

				if s.mask != nil && s.mask[c] {
					// No-slip: reflect the pre-collision populations.
					for i := 0; i < lattice.Q; i++ {
						dst[i] = pop[lattice.Opposite[i]]
					}
					continue
				}

				rho := Density(pop)
				if !(rho > 0) || math.IsInf(rho, 0) {
					return &DivergenceError{
						Step: s.step, X: x, Y: y, Z: z, Density: rho,
					}
				}

				u := Velocity(pop, rho)
				Equilibrium(rho, u, feq[:])
				copy(dst, pop)
				s.col.Collide(dst, feq[:])
			}
		}
	}
	return nil
}

// Macroscopics extracts the density and velocity fields, one scalar
// and one 3-vector per cell. Solid cells report zero.
func (s *Solver) Macroscopics() (rho []float64, vel []float64) {
	cells := s.f.Cells()
	rho = make([]float64, cells)
	vel = make([]float64, 3*cells)

	for c := 0; c < cells; c++ {
		if s.mask != nil && s.mask[c] {
			continue
		}
		pop := s.f.AtCell(c)
		r := Density(pop)
		u := Velocity(pop, r)
		rho[c] = r
		vel[3*c], vel[3*c+1], vel[3*c+2] = u[0], u[1], u[2]
	}
	return rho, vel
}

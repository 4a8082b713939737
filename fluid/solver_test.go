package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/golbm/lattice"
)

func TestNewSolverValidation(t *testing.T) {
	_, err := NewSolver(&Options{Nx: 0, Ny: 4, Nz: 4, Viscosity: 0.02})
	assert.Error(t, err)

	_, err = NewSolver(&Options{Nx: 4, Ny: 4, Nz: 4, Viscosity: 0})
	assert.Error(t, err)

	_, err = NewSolver(&Options{Nx: 4, Ny: 4, Nz: 4, Viscosity: -0.1})
	assert.Error(t, err)

	// A supersonic inflow breaks the Zou/He density reconstruction.
	_, err = NewSolver(&Options{
		Nx: 4, Ny: 4, Nz: 4, Viscosity: 0.02,
		Inflow: UniformInflow(1.0, 4, 4),
	})
	assert.Error(t, err)

	// The same profile is fine in a periodic box where no inflow
	// handler runs.
	_, err = NewSolver(&Options{
		Nx: 4, Ny: 4, Nz: 4, Viscosity: 0.02,
		Inflow: UniformInflow(1.0, 4, 4), Periodic: true,
	})
	assert.NoError(t, err)

	_, err = NewSolver(&Options{
		Nx: 4, Ny: 4, Nz: 4, Viscosity: 0.02,
		Mask: make([]bool, 10),
	})
	assert.Error(t, err)
}

// A uniform equilibrium field in a periodic box is a fixed point of
// collision plus streaming.
func TestUniformEquilibriumIsFixedPoint(t *testing.T) {
	u := [3]float64{0.04, 0, 0}
	s, err := NewSolver(&Options{
		Nx: 10, Ny: 10, Nz: 10,
		Viscosity:    Viscosity(1.2),
		Periodic:     true,
		Collider:     BGK{Omega: 1.2},
		SeedDensity:  1,
		SeedVelocity: u,
	})
	require.NoError(t, err)

	want := NewField(10, 10, 10)
	want.SetEquilibrium(1, u)

	require.NoError(t, s.Step())

	for i := range want.Data {
		assert.InDelta(t, want.Data[i], s.Field().Data[i], 1e-13)
	}
}

func TestMassConservationPeriodic(t *testing.T) {
	s, err := NewSolver(&Options{
		Nx: 6, Ny: 5, Nz: 4,
		Viscosity:    0.05,
		Periodic:     true,
		SeedVelocity: [3]float64{0.03, 0.01, -0.02},
		Workers:      3,
	})
	require.NoError(t, err)

	// Perturb the field so collision actually does something.
	f := s.Field()
	for c := 0; c < f.Cells(); c++ {
		pop := f.AtCell(c)
		pop[3] += 1e-3 * float64(c%7)
		pop[11] += 1e-4 * float64(c%5)
	}

	before := 0.0
	for _, v := range f.Data {
		before += v
	}

	for step := 0; step < 20; step++ {
		require.NoError(t, s.Step())
	}

	after := 0.0
	for _, v := range s.Field().Data {
		after += v
	}
	assert.InDelta(t, before, after, 1e-10*math.Abs(before))
}

func TestDivergenceDetection(t *testing.T) {
	s, err := NewSolver(&Options{
		Nx: 4, Ny: 4, Nz: 4, Viscosity: 0.02, Periodic: true,
	})
	require.NoError(t, err)

	pop := s.Field().At(2, 1, 3)
	for i := range pop {
		pop[i] = -1
	}

	err = s.Step()
	require.Error(t, err)

	div, ok := err.(*DivergenceError)
	require.True(t, ok, "expected a DivergenceError, got %v", err)
	assert.Equal(t, 2, div.X)
	assert.Equal(t, 1, div.Y)
	assert.Equal(t, 3, div.Z)
	assert.True(t, div.Density < 0)
}

func TestDivergenceDetectionNaN(t *testing.T) {
	s, err := NewSolver(&Options{
		Nx: 3, Ny: 3, Nz: 3, Viscosity: 0.02, Periodic: true,
	})
	require.NoError(t, err)

	s.Field().At(1, 1, 1)[5] = math.NaN()

	err = s.Step()
	require.Error(t, err)
	_, ok := err.(*DivergenceError)
	assert.True(t, ok)
}

// An isolated solid cell must hold its pre-collision populations
// permuted by the opposite map after the collision/bounce-back pass of
// a full step.
func TestBounceBackPermutesObstacleCell(t *testing.T) {
	nx, ny, nz := 7, 6, 6
	mask := make([]bool, nx*ny*nz)
	cx, cy, cz := 3, 3, 3
	c := cx + nx*(cy+ny*cz)
	mask[c] = true

	s, err := NewSolver(&Options{
		Nx: nx, Ny: ny, Nz: nz,
		Viscosity:    0.05,
		Mask:         mask,
		SeedVelocity: [3]float64{0.04, 0, 0},
	})
	require.NoError(t, err)

	// Give the solid cell 19 distinct populations.
	var in [lattice.Q]float64
	pop := s.Field().AtCell(c)
	for i := 0; i < lattice.Q; i++ {
		pop[i] = float64(i + 1)
		in[i] = pop[i]
	}

	require.NoError(t, s.Step())

	// The post buffer still holds the pre-streaming state of the step.
	out := s.post.AtCell(c)
	for i := 0; i < lattice.Q; i++ {
		assert.Equal(t, in[lattice.Opposite[i]], out[i], "direction %d", i)
	}
}

func TestZouHeInflowReconstruction(t *testing.T) {
	nx, ny, nz := 5, 3, 3
	ux := 0.08
	s, err := NewSolver(&Options{
		Nx: nx, Ny: ny, Nz: nz,
		Viscosity:    0.05,
		Inflow:       UniformInflow(ux, ny, nz),
		SeedVelocity: [3]float64{ux, 0, 0},
	})
	require.NoError(t, err)

	// Disturb the inlet cell so the reconstruction is non-trivial.
	pop := s.Field().At(0, 1, 1)
	for _, i := range lattice.Lateral {
		pop[i] *= 1.01
	}
	for _, i := range lattice.Left {
		pop[i] *= 0.98
	}

	lat, out := 0.0, 0.0
	for _, i := range lattice.Lateral {
		lat += pop[i]
	}
	for _, i := range lattice.Left {
		out += pop[i]
	}
	wantRho := (lat + 2*out) / (1 - ux)

	s.applyInflow()

	var feq [lattice.Q]float64
	Equilibrium(wantRho, [3]float64{ux, 0, 0}, feq[:])
	for _, i := range lattice.Right {
		assert.InDelta(t, feq[i], pop[i], 1e-14, "direction %d", i)
	}

	// The known populations are untouched.
	gotLat, gotOut := 0.0, 0.0
	for _, i := range lattice.Lateral {
		gotLat += pop[i]
	}
	for _, i := range lattice.Left {
		gotOut += pop[i]
	}
	assert.InDelta(t, lat, gotLat, 1e-15)
	assert.InDelta(t, out, gotOut, 1e-15)
}

func TestOutflowCopiesUpstreamPlane(t *testing.T) {
	nx, ny, nz := 5, 3, 3
	s, err := NewSolver(&Options{
		Nx: nx, Ny: ny, Nz: nz,
		Viscosity:    0.05,
		SeedVelocity: [3]float64{0.04, 0, 0},
	})
	require.NoError(t, err)

	src := s.Field().At(nx-2, 1, 2)
	for _, i := range lattice.Left {
		src[i] = 0.123 + float64(i)/100
	}

	s.outflow()

	dst := s.Field().At(nx-1, 1, 2)
	for _, i := range lattice.Left {
		assert.Equal(t, src[i], dst[i], "direction %d", i)
	}
}

func TestMacroscopicsMatchSeed(t *testing.T) {
	u := [3]float64{0.02, 0.01, 0}
	s, err := NewSolver(&Options{
		Nx: 4, Ny: 4, Nz: 4,
		Viscosity:    0.05,
		Periodic:     true,
		SeedDensity:  1.5,
		SeedVelocity: u,
	})
	require.NoError(t, err)

	rho, vel := s.Macroscopics()
	for c := 0; c < 4*4*4; c++ {
		assert.InDelta(t, 1.5, rho[c], 1e-13)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, u[k], vel[3*c+k], 1e-13)
		}
	}
}

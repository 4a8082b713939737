/*package io reads run configurations and writes solver output.

Configuration files are gcfg ini files with [Simulation], [Obstacle]
and [Relaxation] sections. Every section type has a CheckInit method
that validates it and fills in defaults; setup stops at the first
error.
*/
package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/golbm/fluid"
)

type SimulationConfig struct {
	// Required
	Nx, Ny, Nz     int
	Viscosity      float64
	InflowVelocity float64
	Steps          int

	// Optional
	Collision   string
	OutputEvery int
	OutputDir   string
}

func (sim *SimulationConfig) CheckInit() error {
	if sim.Nx <= 0 || sim.Ny <= 0 || sim.Nz <= 0 {
		return fmt.Errorf(
			"Need positive grid dimensions, but got (%d, %d, %d).",
			sim.Nx, sim.Ny, sim.Nz,
		)
	}
	if sim.Nx < 3 {
		return fmt.Errorf(
			"Nx must be at least 3 so the outflow plane has an "+
				"upstream neighbor, but is %d.", sim.Nx,
		)
	}

	if sim.Viscosity <= 0 {
		return fmt.Errorf(
			"Need a positive Viscosity, but got %g.", sim.Viscosity,
		)
	}
	omega := fluid.Omega(sim.Viscosity)
	if omega <= 0 || omega >= 2 {
		return fmt.Errorf(
			"Viscosity %g gives relaxation rate %g, which is outside "+
				"the stable range (0, 2).", sim.Viscosity, omega,
		)
	}

	if 1-sim.InflowVelocity <= 0 {
		return fmt.Errorf(
			"InflowVelocity %g is not below the lattice speed limit.",
			sim.InflowVelocity,
		)
	}

	if sim.Steps <= 0 {
		return fmt.Errorf("Need a positive Steps count, but got %d.", sim.Steps)
	}

	if sim.Collision == "" {
		sim.Collision = "bgk"
	}
	switch strings.ToLower(sim.Collision) {
	case "bgk", "mrt":
		sim.Collision = strings.ToLower(sim.Collision)
	default:
		return fmt.Errorf(
			"Unknown Collision variant '%s'. Accepted variants are "+
				"'bgk' and 'mrt'.", sim.Collision,
		)
	}

	if sim.OutputEvery < 0 {
		return fmt.Errorf(
			"OutputEvery must be non-negative, but is %d.", sim.OutputEvery,
		)
	}
	if sim.OutputDir == "" {
		sim.OutputDir = "."
	}

	return nil
}

type ObstacleConfig struct {
	// Required
	Type string

	// Optional. Center coordinates and radius as fractions of the
	// domain; zero values fall back to the standard placement.
	X, Y, Z float64
	Radius  float64
}

func (obs *ObstacleConfig) CheckInit() error {
	if obs.Type == "" {
		obs.Type = "none"
	}
	switch strings.ToLower(obs.Type) {
	case "none", "sphere", "cylinder":
		obs.Type = strings.ToLower(obs.Type)
	default:
		return fmt.Errorf(
			"Unknown Obstacle Type '%s'. Accepted types are 'none', "+
				"'sphere', and 'cylinder'.", obs.Type,
		)
	}

	if obs.Type == "none" {
		return nil
	}

	if obs.X == 0 {
		obs.X = 0.25
	}
	if obs.Y == 0 {
		obs.Y = 0.5
	}
	if obs.Z == 0 {
		obs.Z = 0.5
	}
	if obs.Radius == 0 {
		obs.Radius = 0.125
	}

	for _, c := range []float64{obs.X, obs.Y, obs.Z} {
		if c < 0 || c >= 1 {
			return fmt.Errorf(
				"Obstacle center (%g, %g, %g) must have coordinates "+
					"in [0, 1).", obs.X, obs.Y, obs.Z,
			)
		}
	}
	if obs.Radius <= 0 || obs.Radius >= 0.5 {
		return fmt.Errorf(
			"Obstacle Radius must be in (0, 0.5), but is %g.", obs.Radius,
		)
	}

	return nil
}

// Mask rasterizes the obstacle onto an nx x ny x nz grid. The radius
// scales with the smaller of the two cross-stream dimensions. A
// cylinder has its axis along z, the spanwise direction.
func (obs *ObstacleConfig) Mask(nx, ny, nz int) []bool {
	if obs.Type == "none" {
		return nil
	}

	mask := make([]bool, nx*ny*nz)
	cx := obs.X * float64(nx)
	cy := obs.Y * float64(ny)
	cz := obs.Z * float64(nz)

	min := ny
	if nz < min {
		min = nz
	}
	r := obs.Radius * float64(min)

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				dx := float64(x) - cx
				dy := float64(y) - cy
				dz := float64(z) - cz

				var in bool
				switch obs.Type {
				case "sphere":
					in = math.Sqrt(dx*dx+dy*dy+dz*dz) < r
				case "cylinder":
					in = math.Sqrt(dx*dx+dy*dy) < r
				}
				if in {
					mask[x+nx*(y+ny*z)] = true
				}
			}
		}
	}
	return mask
}

type RelaxationConfig struct {
	// Optional. Zero values fall back to the literature defaults.
	S1, S2, S4, S10, S16 float64
}

func (rel *RelaxationConfig) CheckInit() error {
	def := fluid.DefaultRates()
	if rel.S1 == 0 {
		rel.S1 = def.S1
	}
	if rel.S2 == 0 {
		rel.S2 = def.S2
	}
	if rel.S4 == 0 {
		rel.S4 = def.S4
	}
	if rel.S10 == 0 {
		rel.S10 = def.S10
	}
	if rel.S16 == 0 {
		rel.S16 = def.S16
	}

	for _, s := range []float64{rel.S1, rel.S2, rel.S4, rel.S10, rel.S16} {
		if s <= 0 || s >= 2 {
			return fmt.Errorf(
				"Relaxation rates must be in (0, 2), but got %g.", s,
			)
		}
	}
	return nil
}

// Rates converts the section into the solver's rate struct.
func (rel *RelaxationConfig) Rates() fluid.RelaxationRates {
	return fluid.RelaxationRates{
		S1: rel.S1, S2: rel.S2, S4: rel.S4, S10: rel.S10, S16: rel.S16,
	}
}

type RunConfig struct {
	Simulation SimulationConfig
	Obstacle   ObstacleConfig
	Relaxation RelaxationConfig
}

// ReadRunConfig reads and validates a configuration file.
func ReadRunConfig(fname string) (*RunConfig, error) {
	cfg := &RunConfig{}
	if err := gcfg.ReadFileInto(cfg, fname); err != nil {
		return nil, err
	}

	if err := cfg.Simulation.CheckInit(); err != nil {
		return nil, err
	}
	if err := cfg.Obstacle.CheckInit(); err != nil {
		return nil, err
	}
	if err := cfg.Relaxation.CheckInit(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExampleRunConfig returns an example configuration file.
func ExampleRunConfig() string {
	return `[Simulation]
Nx = 200
Ny = 80
Nz = 80
Viscosity = 0.005
InflowVelocity = 0.04
Steps = 20000
# Collision is either bgk or mrt.
Collision = mrt
OutputEvery = 500
OutputDir = output

[Obstacle]
# Type is none, sphere, or cylinder. A cylinder's axis runs along z.
Type = sphere
# Center and radius as fractions of the domain.
X = 0.25
Y = 0.5
Z = 0.5
Radius = 0.125

[Relaxation]
# Free MRT rates. Omitted rates use the literature defaults.
S1 = 1.19
S2 = 1.4
S4 = 1.2
S10 = 1.4
S16 = 1.98`
}

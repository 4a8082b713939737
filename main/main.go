package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"

	"github.com/phil-mansfield/golbm/fluid"
	"github.com/phil-mansfield/golbm/io"
)

var numCores int

func main() {
	var (
		configPath    string
		exampleConfig bool
	)

	flag.IntVar(
		&numCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&configPath, "Config", "",
		"Configuration file describing the run.",
	)
	flag.BoolVar(
		&exampleConfig, "ExampleConfig", false,
		"Prints an example configuration file to stdout and exits.",
	)
	flag.Parse()

	if exampleConfig {
		fmt.Println(io.ExampleRunConfig())
		return
	}
	if configPath == "" {
		log.Fatal("No -Config file given. Run with -ExampleConfig to " +
			"see the expected format.")
	}

	cfg, err := io.ReadRunConfig(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := run(cfg); err != nil {
		log.Fatal(err.Error())
	}
}

func run(cfg *io.RunConfig) error {
	sim := &cfg.Simulation

	mask := cfg.Obstacle.Mask(sim.Nx, sim.Ny, sim.Nz)
	omega := fluid.Omega(sim.Viscosity)

	var col fluid.Collider
	if sim.Collision == "mrt" {
		mrt, err := fluid.NewMRT(omega, cfg.Relaxation.Rates())
		if err != nil {
			return err
		}
		col = mrt
	}

	solver, err := fluid.NewSolver(&fluid.Options{
		Nx: sim.Nx, Ny: sim.Ny, Nz: sim.Nz,
		Viscosity:    sim.Viscosity,
		Mask:         mask,
		Collider:     col,
		Workers:      numCores,
		SeedVelocity: [3]float64{sim.InflowVelocity, 0, 0},
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(sim.OutputDir, 0755); err != nil {
		return err
	}

	var forces *io.ForceWriter
	var area float64
	if mask != nil {
		forces, err = io.NewForceWriter(path.Join(sim.OutputDir, "force.txt"))
		if err != nil {
			return err
		}
		defer forces.Close()
		area = fluid.FrontalArea(sim.Nx, sim.Ny, sim.Nz, mask)
	}

	log.Printf(
		"Running %s on a %d x %d x %d grid for %d steps (omega = %.4g).",
		sim.Collision, sim.Nx, sim.Ny, sim.Nz, sim.Steps, omega,
	)

	for step := 1; step <= sim.Steps; step++ {
		if err := solver.Step(); err != nil {
			return err
		}

		if sim.OutputEvery > 0 && step%sim.OutputEvery == 0 {
			log.Printf("Step %d/%d", step, sim.Steps)

			if err := writeSample(cfg, solver, forces, area, step); err != nil {
				return err
			}
		}
	}

	rho, vel := solver.Macroscopics()
	return io.WriteSnapshot(
		path.Join(sim.OutputDir, "final.dat"),
		sim.Steps, sim.Nx, sim.Ny, sim.Nz, rho, vel,
	)
}

func writeSample(
	cfg *io.RunConfig, solver *fluid.Solver,
	forces *io.ForceWriter, area float64, step int,
) error {
	sim := &cfg.Simulation

	rho, vel := solver.Macroscopics()
	fname := path.Join(sim.OutputDir, fmt.Sprintf("snapshot_%06d.dat", step))
	err := io.WriteSnapshot(fname, step, sim.Nx, sim.Ny, sim.Nz, rho, vel)
	if err != nil {
		return err
	}

	if forces != nil {
		force := solver.Exchange().Force(solver.Field())
		cd := fluid.DragCoefficient(
			force[0], 1, sim.InflowVelocity, area,
		)
		if err := forces.Write(step, force, cd); err != nil {
			return err
		}
	}
	return nil
}

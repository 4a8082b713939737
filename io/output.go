package io

import (
	"encoding/binary"
	"fmt"
	"os"
)

var (
	// All snapshot files are little endian.
	snapshotEndianness = binary.LittleEndian
)

// snapshotHeader sits at the front of every snapshot file.
type snapshotHeader struct {
	Nx, Ny, Nz int32
	Step       int64
}

// WriteSnapshot writes the density and velocity fields of one step as
// a binary snapshot: a fixed header, then nx*ny*nz float64 densities,
// then 3*nx*ny*nz float64 velocity components, all little endian and
// in cell order.
func WriteSnapshot(
	fname string, step, nx, ny, nz int, rho, vel []float64,
) error {
	if len(rho) != nx*ny*nz {
		panic("len(rho) does not match the grid.")
	} else if len(vel) != 3*nx*ny*nz {
		panic("len(vel) does not match the grid.")
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	hd := snapshotHeader{
		Nx: int32(nx), Ny: int32(ny), Nz: int32(nz), Step: int64(step),
	}
	if err := binary.Write(f, snapshotEndianness, &hd); err != nil {
		return err
	}
	if err := binary.Write(f, snapshotEndianness, rho); err != nil {
		return err
	}
	return binary.Write(f, snapshotEndianness, vel)
}

// ReadSnapshotHeader reads back the header of a snapshot file.
func ReadSnapshotHeader(fname string) (nx, ny, nz, step int, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	defer f.Close()

	hd := snapshotHeader{}
	if err := binary.Read(f, snapshotEndianness, &hd); err != nil {
		return 0, 0, 0, 0, err
	}
	return int(hd.Nx), int(hd.Ny), int(hd.Nz), int(hd.Step), nil
}

// ForceWriter appends one force sample per line to a text file.
type ForceWriter struct {
	f *os.File
}

func NewForceWriter(fname string) (*ForceWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(f, "# step fx fy fz cd\n"); err != nil {
		f.Close()
		return nil, err
	}
	return &ForceWriter{f}, nil
}

// Write appends the force and drag coefficient of one step.
func (w *ForceWriter) Write(step int, force [3]float64, cd float64) error {
	_, err := fmt.Fprintf(
		w.f, "%d %g %g %g %g\n", step, force[0], force[1], force[2], cd,
	)
	return err
}

func (w *ForceWriter) Close() error { return w.f.Close() }

package fluid

import (
	"github.com/phil-mansfield/golbm/lattice"
)

// streamSlab propagates post-collision populations along their
// directions for the z planes in [zLo, zHi), reading from src and
// writing to dst. All axes wrap toroidally; the values that wrap
// across the x boundary are overwritten by the next step's boundary
// pass, so the streamwise axis is effectively open.
//
// src and dst must be distinct fields: streaming reads each neighbor's
// pre-step value, so it cannot run in place.
func streamSlab(src, dst *Field, zLo, zHi int) {
	nx, ny, nz := src.Nx, src.Ny, src.Nz
	for z := zLo; z < zHi; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				out := dst.At(x, y, z)
				for i := 0; i < lattice.Q; i++ {
					e := &lattice.Velocities[i]
					sx := wrap(x-e[0], nx)
					sy := wrap(y-e[1], ny)
					sz := wrap(z-e[2], nz)
					out[i] = src.At(sx, sy, sz)[i]
				}
			}
		}
	}
}

func wrap(i, n int) int {
	if i < 0 {
		return i + n
	} else if i >= n {
		return i - n
	}
	return i
}

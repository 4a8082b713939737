package io

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotHeaderRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "golbm_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	nx, ny, nz := 4, 3, 2
	rho := make([]float64, nx*ny*nz)
	vel := make([]float64, 3*nx*ny*nz)
	for i := range rho {
		rho[i] = float64(i)
	}

	fname := path.Join(dir, "snapshot.dat")
	require.NoError(t, WriteSnapshot(fname, 17, nx, ny, nz, rho, vel))

	gotNx, gotNy, gotNz, step, err := ReadSnapshotHeader(fname)
	require.NoError(t, err)
	assert.Equal(t, nx, gotNx)
	assert.Equal(t, ny, gotNy)
	assert.Equal(t, nz, gotNz)
	assert.Equal(t, 17, step)

	// Header + (1 + 3) float64 fields per cell.
	info, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Equal(t, int64(3*4+8+8*4*len(rho)), info.Size())
}

func TestForceWriter(t *testing.T) {
	dir, err := ioutil.TempDir("", "golbm_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	fname := path.Join(dir, "force.txt")
	w, err := NewForceWriter(fname)
	require.NoError(t, err)

	require.NoError(t, w.Write(5, [3]float64{0.1, 0, -0.2}, 1.3))
	require.NoError(t, w.Close())

	text, err := ioutil.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(text), "# step fx fy fz cd")
	assert.Contains(t, string(text), "5 0.1 0 -0.2 1.3")
}

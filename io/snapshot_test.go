package io

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/diskjet/field"
)

// writeSnapshotDir lays out a minimal valid 3 x 2 snapshot.
func writeSnapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	arrs := map[string][]float64{
		"v_r.npy":      {1, 2, 3, 4, 5, 6},
		"rho.npy":      {1e-12, 1e-13, 1e-14, 1e-15, 1e-16, 1e-17},
		"Pgrad_r.npy":  {0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		"PBgrad_r.npy": {0.01, 0.02, 0.03, 0.04, 0.05, 0.06},
		"x.npy":        {0, 1, 2, 0, 1, 2},
		"z.npy":        {0, 0, 0, 1, 1, 1},
	}
	for name, vals := range arrs {
		err := WriteArray(filepath.Join(dir, name), field.New(vals, 3, 2))
		if err != nil { t.Fatal(err.Error()) }
	}

	err := os.WriteFile(TablePath(dir), []byte("0 1 1e-6 0.5\n"), 0644)
	if err != nil { t.Fatal(err.Error()) }
	return dir
}

func TestReadSnapshot(t *testing.T) {
	dir := writeSnapshotDir(t)

	snap, err := ReadSnapshot(dir)
	if err != nil {
		t.Fatalf("ReadSnapshot: %s", err.Error())
	}

	assert.Equal(t, 3, snap.Grid.Nx(), "grid nx")
	assert.Equal(t, 2, snap.Grid.Nz(), "grid nz")
	assert.Equal(t, 2.0, snap.VR.At(1, 0), "v_r layout")
	assert.Equal(t, 1e-15, snap.Rho.At(0, 1), "rho layout")
	assert.Equal(t, 0.6, snap.PGrad.At(2, 1), "thermal gradient layout")
	assert.Equal(t, 0.01, snap.PBGrad.At(0, 0), "magnetic gradient layout")
	assert.Equal(t, []float64{0, 1, 2}, snap.Grid.XAxis(), "x axis")
	assert.Equal(t, []float64{0, 1}, snap.Grid.ZAxis(), "z axis")
}

func TestReadSnapshotMissingFiles(t *testing.T) {
	dir := writeSnapshotDir(t)
	os.Remove(filepath.Join(dir, "rho.npy"))
	os.Remove(TablePath(dir))

	_, err := ReadSnapshot(dir)
	if err == nil {
		t.Fatal("expected an error for a snapshot with missing files.")
	}
	assert.True(t, errors.Is(err, ErrMissingFile), "sentinel")
	assert.True(
		t, strings.Contains(err.Error(), "rho.npy"),
		"error must name rho.npy",
	)
	assert.True(
		t, strings.Contains(err.Error(), "table.txt"),
		"error must name table.txt",
	)
	assert.False(
		t, strings.Contains(err.Error(), "v_r.npy"),
		"error must not name present files",
	)
}

func TestReadSnapshotShapeMismatch(t *testing.T) {
	dir := writeSnapshotDir(t)
	err := WriteArray(
		filepath.Join(dir, "rho.npy"),
		field.New([]float64{1, 2, 3, 4}, 2, 2),
	)
	if err != nil { t.Fatal(err.Error()) }

	_, err = ReadSnapshot(dir)
	if err == nil {
		t.Fatal("expected an error for mismatched array shapes.")
	}
	assert.True(t, errors.Is(err, ErrShapeMismatch), "sentinel")
	assert.True(
		t, strings.Contains(err.Error(), "rho.npy is 2 x 2"),
		"error must give the offending shape",
	)
}

func TestReadSnapshotRejectsCorruptArray(t *testing.T) {
	dir := writeSnapshotDir(t)
	err := os.WriteFile(
		filepath.Join(dir, "x.npy"), []byte("scrambled"), 0644,
	)
	if err != nil { t.Fatal(err.Error()) }

	_, err = ReadSnapshot(dir)
	assert.Error(t, err, "corrupt array must abort the load")
}

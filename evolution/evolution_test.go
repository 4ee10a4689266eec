package evolution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTable(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err.Error())
	}
	return path
}

func TestReadHistoryDefaultColumns(t *testing.T) {
	path := writeTable(t, `# t m mdot L
0.0 1.0 1e-6 0.5
1.0 1.1 2e-6 0.6
2.0 1.3 1.5e-6 0.7
`)

	h, err := ReadHistory(path, DefaultColumns())
	if err != nil {
		t.Fatalf("ReadHistory: %s", err.Error())
	}

	assert.Equal(t, 3, h.Len(), "row count")
	assert.Equal(t, 1, h.Bands(), "band count")
	assert.Equal(t, []float64{0, 1, 2}, h.Time, "time column")
	assert.Equal(t, []float64{1.0, 1.1, 1.3}, h.Mass, "mass column")
	assert.Equal(
		t, []float64{1e-6, 2e-6, 1.5e-6}, h.Accretion, "accretion column",
	)
	assert.Equal(t, []float64{0.5, 0.6, 0.7}, h.Luminosity[0], "luminosity")
}

func TestReadHistoryCustomColumns(t *testing.T) {
	// mass, accretion, time, then two luminosity bands.
	path := writeTable(t, `1.0 1e-6 0.0 0.5 5.0
1.1 2e-6 1.0 0.6 6.0
`)
	cols := Columns{Time: 2, Mass: 0, Accretion: 1, Luminosity: []int{3, 4}}

	h, err := ReadHistory(path, cols)
	if err != nil {
		t.Fatalf("ReadHistory: %s", err.Error())
	}

	assert.Equal(t, 2, h.Len(), "row count")
	assert.Equal(t, 2, h.Bands(), "band count")
	assert.Equal(t, []float64{0, 1}, h.Time, "time column")
	assert.Equal(t, []float64{1.0, 1.1}, h.Mass, "mass column")
	assert.Equal(t, []float64{5.0, 6.0}, h.Luminosity[1], "second band")
}

func TestReadHistoryPreservesOrder(t *testing.T) {
	// Unsorted and duplicated times are passed through untouched.
	path := writeTable(t, `2.0 1.0 1e-6 0.5
0.0 1.1 1e-6 0.6
0.0 1.2 1e-6 0.7
`)

	h, err := ReadHistory(path, DefaultColumns())
	if err != nil {
		t.Fatalf("ReadHistory: %s", err.Error())
	}
	assert.Equal(t, []float64{2, 0, 0}, h.Time, "file order kept")
}

func TestReadHistoryErrors(t *testing.T) {
	_, err := ReadHistory(
		filepath.Join(t.TempDir(), "no_such.txt"), DefaultColumns(),
	)
	assert.Error(t, err, "missing file")

	path := writeTable(t, "# only a comment line\n")
	_, err = ReadHistory(path, DefaultColumns())
	assert.Error(t, err, "table with no rows")
}

package tablefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "variety,yield\nA,25\nA,26\nB,31\nB,28\n")

	ds, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, 4, ds.NumRows())
	assert.Equal(t, []string{"variety", "yield"}, ds.Columns())
	assert.True(t, ds.IsFactor("variety"))
	assert.False(t, ds.IsFactor("yield"))

	yields, err := ds.NumericColumn("yield")
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 26, 31, 28}, yields)
}

func TestReadCSVNumericLookingFactor(t *testing.T) {
	// A lone non-numeric cell turns the whole column into a factor.
	path := writeCSV(t, "dose,yield\n0,10\n1,12\nhigh,15\n")

	ds, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.True(t, ds.IsFactor("dose"))

	doses, err := ds.FactorColumn("dose")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "high"}, doses)
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeCSV(t, "variety,yield\n")

	_, err := NewReader(path).Read()
	assert.ErrorContains(t, err, "at least one data row")
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).Read()
	assert.ErrorContains(t, err, "not found")
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"block", "product", "ppm"},
		{"b1", "p1", 83.0},
		{"b1", "p2", 86.0},
		{"b2", "p1", 63.0},
		{"b2", "p2", 69.0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, 4, ds.NumRows())
	assert.True(t, ds.IsFactor("block"))
	assert.True(t, ds.IsFactor("product"))

	ppm, err := ds.NumericColumn("ppm")
	require.NoError(t, err)
	assert.Equal(t, []float64{83, 86, 63, 69}, ppm)
}

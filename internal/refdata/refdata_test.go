package refdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const especiesCSV = `Instrumento,Ticker,Tipo
PELLEGRINI RENTA PESOS - Clase A,PRPA,Fondo
PELLEGRINI RENTA PESOS - Clase B,PRPB,Fondo
Grupo Financiero Galicia,GGAL,
YPF S.A.,YPFD,Accion
FCI RENTA FIJA - Clase A,PRFA,
`

func testTable(t *testing.T) *Table {
	t.Helper()
	entries, err := ReadEntries(strings.NewReader(especiesCSV))
	require.NoError(t, err)
	return NewTable(entries)
}

func TestReadEntries(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(especiesCSV))
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.Equal(t, "PRPA", entries[0].Ticker)
	assert.Equal(t, KindFund, entries[0].Kind)
	assert.Equal(t, KindSecurity, entries[3].Kind)
}

func TestReadEntries_KindInferredFromName(t *testing.T) {
	// Two-column files carry no Tipo; the kind comes from the name.
	entries, err := ReadEntries(strings.NewReader("Instrumento,Ticker\nFCI AHORRO PESOS,FAP\nYPF S.A.,YPFD\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindFund, entries[0].Kind)
	assert.Equal(t, KindSecurity, entries[1].Kind)
}

func TestReadEntries_Malformed(t *testing.T) {
	_, err := ReadEntries(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadEntries(strings.NewReader("Instrumento,Ticker\nonlyname\n"))
	assert.Error(t, err)

	_, err = ReadEntries(strings.NewReader("Instrumento,Ticker\nGGAL,\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty ticker")
}

func TestResolve(t *testing.T) {
	table := testTable(t)

	e, ok := table.Resolve("Grupo Financiero Galicia")
	require.True(t, ok)
	assert.Equal(t, "GGAL", e.Ticker)

	// Case- and accent-insensitive.
	e, ok = table.Resolve("grupo financiero galicia")
	require.True(t, ok)
	assert.Equal(t, "GGAL", e.Ticker)

	_, ok = table.Resolve("Unknown Corp")
	assert.False(t, ok)
}

func TestResolveFund(t *testing.T) {
	table := testTable(t)

	e, count := table.ResolveFund("RENTA PESOS", "A")
	assert.Equal(t, 1, count)
	assert.Equal(t, "PRPA", e.Ticker)

	e, count = table.ResolveFund("RENTA PESOS", "Clase B")
	assert.Equal(t, 1, count)
	assert.Equal(t, "PRPB", e.Ticker)

	// Ambiguous: both classes contain the fund name.
	e, count = table.ResolveFund("RENTA PESOS", "")
	assert.Equal(t, 2, count)
	assert.Equal(t, "PRPA", e.Ticker) // first in table order

	_, count = table.ResolveFund("NO SUCH FUND", "A")
	assert.Equal(t, 0, count)
}

func TestIsFund(t *testing.T) {
	table := testTable(t)

	assert.True(t, table.IsFund("PELLEGRINI RENTA PESOS - Clase A"))
	assert.False(t, table.IsFund("Grupo Financiero Galicia"))

	// Unresolved names fall back to a vocabulary check.
	assert.True(t, table.IsFund("Fondo Desconocido"))
	assert.False(t, table.IsFund("Bono Desconocido"))
	assert.False(t, table.IsFund(""))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "especies.csv")
	require.NoError(t, os.WriteFile(path, []byte(especiesCSV), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

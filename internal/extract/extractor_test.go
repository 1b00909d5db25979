package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

const especiesCSV = `Instrumento,Ticker,Tipo
PELLEGRINI RENTA PESOS - Clase A,PRPA,Fondo
PELLEGRINI RENTA PESOS - Clase B,PRPB,Fondo
Grupo Financiero Galicia,GGAL,
YPF S.A.,YPFD,
`

func testRef(t *testing.T) *refdata.Table {
	t.Helper()
	entries, err := refdata.ReadEntries(strings.NewReader(especiesCSV))
	require.NoError(t, err)
	return refdata.NewTable(entries)
}

func dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewSet(t *testing.T) {
	set := NewSet(config.Default())

	for _, cat := range []model.OperationCategory{
		model.CategoryTrade,
		model.CategoryMonetaryFlow,
		model.CategorySecurityFlow,
		model.CategoryMutualFund,
	} {
		e, ok := set.For(cat)
		require.True(t, ok, cat)
		assert.Equal(t, cat, e.Category())
	}

	_, ok := set.For(model.CategoryIncome)
	assert.False(t, ok)
	_, ok = set.For(model.CategoryUnclassified)
	assert.False(t, ok)
}

func TestResolveName(t *testing.T) {
	ref := testRef(t)

	name, warns := resolveName("Grupo Financiero Galicia", 3, ref)
	assert.Equal(t, "GGAL", name)
	assert.Empty(t, warns)

	// Misses fall back to the raw name with a warning, never an error.
	name, warns = resolveName("Bono Desconocido", 7, ref)
	assert.Equal(t, "Bono Desconocido", name)
	require.Len(t, warns, 1)
	assert.Equal(t, model.WarnLookupMiss, warns[0].Kind)
	assert.Equal(t, 7, warns[0].Line)

	name, warns = resolveName("", 1, ref)
	assert.Empty(t, name)
	assert.Empty(t, warns)
}

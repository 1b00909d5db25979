package classify

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
	"github.com/brokerfeed-dev/brokerfeed/internal/refdata"
)

const especiesCSV = `Instrumento,Ticker,Tipo
PELLEGRINI RENTA PESOS - Clase A,PRPA,Fondo
Grupo Financiero Galicia,GGAL,
YPF S.A.,YPFD,
`

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	entries, err := refdata.ReadEntries(strings.NewReader(especiesCSV))
	require.NoError(t, err)
	return New(config.Default().Vocabulary, refdata.NewTable(entries))
}

func dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestClassify_IncomeOnSecurity(t *testing.T) {
	c := testClassifier(t)

	out := c.Classify(model.NormalizedRow{
		Descriptor: "PAGO DIVIDENDO",
		Security:   "Grupo Financiero Galicia",
	})
	assert.Equal(t, model.CategoryIncome, out.Category)
	assert.Equal(t, "income-on-security", out.Rule)

	// An ISIN alone also counts as a security reference.
	out = c.Classify(model.NormalizedRow{
		Descriptor: "CUPON AMORTIZACION",
		ISIN:       "ARP125991090",
	})
	assert.Equal(t, model.CategoryIncome, out.Category)
}

func TestClassify_IncomeKeywordWithoutSecurityIsNotIncome(t *testing.T) {
	c := testClassifier(t)

	out := c.Classify(model.NormalizedRow{
		Descriptor: "DIVIDENDO",
		Amount:     dec("1500"),
	})
	assert.NotEqual(t, model.CategoryIncome, out.Category)
	assert.Equal(t, model.CategoryUnclassified, out.Category)
}

func TestClassify_MutualFundByKeyword(t *testing.T) {
	c := testClassifier(t)

	for _, descriptor := range []string{"SUSCRIPCION", "RESCATE", "RESCATE TOTAL"} {
		out := c.Classify(model.NormalizedRow{Descriptor: descriptor})
		assert.Equal(t, model.CategoryMutualFund, out.Category, descriptor)
		assert.Equal(t, "mutual-fund", out.Rule, descriptor)
	}
}

func TestClassify_MutualFundByResolution(t *testing.T) {
	c := testClassifier(t)

	// No keyword at all: quantity, price and a fund-kind instrument decide.
	out := c.Classify(model.NormalizedRow{
		Descriptor: "MOVIMIENTO",
		Security:   "PELLEGRINI RENTA PESOS - Clase A",
		Quantity:   dec("1234.5678"),
		Price:      dec("8.1"),
	})
	assert.Equal(t, model.CategoryMutualFund, out.Category)
}

func TestClassify_TradeByKeyword(t *testing.T) {
	c := testClassifier(t)

	for _, descriptor := range []string{"COMPRA", "VENTA", "TRADE"} {
		out := c.Classify(model.NormalizedRow{Descriptor: descriptor})
		assert.Equal(t, model.CategoryTrade, out.Category, descriptor)
		assert.Equal(t, "trade", out.Rule, descriptor)
	}
}

func TestClassify_TradeByResolution(t *testing.T) {
	c := testClassifier(t)

	out := c.Classify(model.NormalizedRow{
		Descriptor: "BOLETO 123",
		Security:   "Grupo Financiero Galicia",
		Quantity:   dec("100"),
		Price:      dec("2500"),
	})
	assert.Equal(t, model.CategoryTrade, out.Category)

	// A fund instrument with the same shape lands on mutual-fund instead.
	out = c.Classify(model.NormalizedRow{
		Descriptor: "BOLETO 123",
		Security:   "PELLEGRINI RENTA PESOS - Clase A",
		Quantity:   dec("100"),
		Price:      dec("8.1"),
	})
	assert.Equal(t, model.CategoryMutualFund, out.Category)
}

func TestClassify_SecurityFlow(t *testing.T) {
	c := testClassifier(t)

	out := c.Classify(model.NormalizedRow{
		Descriptor: "TRANSFERENCIA DE TITULOS",
		Security:   "YPF S.A.",
		Quantity:   dec("50"),
	})
	assert.Equal(t, model.CategorySecurityFlow, out.Category)
	assert.Equal(t, "security-flow", out.Rule)

	// An amount on the row disqualifies it from the security-flow shape.
	out = c.Classify(model.NormalizedRow{
		Descriptor: "MOVIMIENTO DE TITULOS",
		Security:   "YPF S.A.",
		Quantity:   dec("50"),
		Amount:     dec("1000"),
	})
	assert.NotEqual(t, model.CategorySecurityFlow, out.Category)
}

func TestClassify_MonetaryFlow(t *testing.T) {
	c := testClassifier(t)

	for _, descriptor := range []string{"DEPOSITO", "EXTRACCION USD", "COMISION MENSUAL", "INTERESES GANADOS", "TRANSFERENCIA RECIBIDA"} {
		out := c.Classify(model.NormalizedRow{
			Descriptor: descriptor,
			Amount:     dec("100"),
		})
		assert.Equal(t, model.CategoryMonetaryFlow, out.Category, descriptor)
		assert.Equal(t, "monetary-flow", out.Rule, descriptor)
	}
}

func TestClassify_MonetaryFlowRequiresPureCashShape(t *testing.T) {
	c := testClassifier(t)

	// Cash keyword but a security on the row: no monetary match.
	out := c.Classify(model.NormalizedRow{
		Descriptor: "DEPOSITO",
		Security:   "YPF S.A.",
		Amount:     dec("100"),
	})
	assert.Equal(t, model.CategoryUnclassified, out.Category)

	// Cash keyword but a quantity present.
	out = c.Classify(model.NormalizedRow{
		Descriptor: "DEPOSITO",
		Quantity:   dec("10"),
		Amount:     dec("100"),
	})
	assert.Equal(t, model.CategoryUnclassified, out.Category)
}

func TestClassify_PriorityOrder(t *testing.T) {
	c := testClassifier(t)

	// Fund keywords outrank trade keywords when both appear.
	out := c.Classify(model.NormalizedRow{Descriptor: "SUSCRIPCION POR COMPRA"})
	assert.Equal(t, model.CategoryMutualFund, out.Category)

	// Income on a security outranks everything, fund resolution included.
	out = c.Classify(model.NormalizedRow{
		Descriptor: "RENTA DE TITULOS",
		Security:   "PELLEGRINI RENTA PESOS - Clase A",
		Quantity:   dec("100"),
		Price:      dec("8.1"),
	})
	assert.Equal(t, model.CategoryIncome, out.Category)
}

func TestClassify_Unclassified(t *testing.T) {
	c := testClassifier(t)

	out := c.Classify(model.NormalizedRow{Descriptor: "AJUSTE CONTABLE"})
	assert.Equal(t, model.CategoryUnclassified, out.Category)
	assert.Empty(t, out.Rule)
	assert.Equal(t, NoRuleMatched, out.Reason)

	out = c.Classify(model.NormalizedRow{})
	assert.Equal(t, model.CategoryUnclassified, out.Category)
}

func TestClassify_Deterministic(t *testing.T) {
	c := testClassifier(t)
	row := model.NormalizedRow{
		Descriptor: "SUSCRIPCION",
		Security:   "PELLEGRINI RENTA PESOS - Clase A",
		Quantity:   dec("1234.5678"),
		Price:      dec("8.1"),
	}

	first := c.Classify(row)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(row))
	}
}

func TestRuleNames(t *testing.T) {
	c := testClassifier(t)
	assert.Equal(t, []string{
		"income-on-security",
		"mutual-fund",
		"trade",
		"security-flow",
		"monetary-flow",
	}, c.RuleNames())
}

package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokerfeed-dev/brokerfeed/internal/config"
	"github.com/brokerfeed-dev/brokerfeed/internal/model"
)

func TestMutualFundExtract_Subscription(t *testing.T) {
	e := NewMutualFund(config.Default())

	op, warns, err := e.Extract(model.NormalizedRow{
		Line:          3,
		AgreementDate: date(2024, time.January, 3),
		Description:   "Suscripción",
		Descriptor:    "SUSCRIPCION",
		Quantity:      dec("1234.5678"),
		Price:         dec("8.1"),
		Amount:        dec("10000"),
		Security:      "PELLEGRINI RENTA PESOS",
		ShareClass:    "A",
	}, testRef(t))
	require.NoError(t, err)
	assert.Empty(t, warns)

	fund, ok := op.(*model.MutualFund)
	require.True(t, ok)
	assert.Equal(t, model.CategoryMutualFund, fund.Category())
	assert.Equal(t, model.FundSubscription, fund.FundOperationType)
	assert.Equal(t, "01/03/2024", fund.AgreementDate.String())
	// Fund statements omit the settlement date; it defaults to agreement.
	require.NotNil(t, fund.SettlementTerm)
	assert.Equal(t, "T", *fund.SettlementTerm)
	assert.Equal(t, "01/03/2024", fund.SettlementDate.String())
	assert.Equal(t, "Mercado de Fondos", fund.Exchange)
	require.NotNil(t, fund.SecurityAmount)
	assert.Equal(t, "1234.5678", fund.SecurityAmount.String())
	assert.Equal(t, "PRPA", fund.SecurityName)
	require.NotNil(t, fund.NetPaymentAmount)
	assert.Equal(t, "10000", fund.NetPaymentAmount.String())
	assert.Equal(t, "ARS", fund.Currency)
}

func TestMutualFundExtract_Redemption(t *testing.T) {
	e := NewMutualFund(config.Default())

	op, _, err := e.Extract(model.NormalizedRow{
		AgreementDate:  date(2024, time.February, 28),
		SettlementDate: date(2024, time.March, 1),
		Descriptor:     "RESCATE",
		Quantity:       dec("-500"),
		Amount:         dec("-4100.25"),
		Security:       "PELLEGRINI RENTA PESOS",
		ShareClass:     "Clase B",
	}, testRef(t))
	require.NoError(t, err)

	fund := op.(*model.MutualFund)
	assert.Equal(t, model.FundRedemption, fund.FundOperationType)
	require.NotNil(t, fund.SettlementTerm)
	assert.Equal(t, "T+1", *fund.SettlementTerm)
	assert.Equal(t, "03/01/2024", fund.SettlementDate.String())
	assert.Equal(t, "PRPB", fund.SecurityName)
	// Amounts are reported absolute; direction is the operation type.
	assert.Equal(t, "500", fund.SecurityAmount.String())
	assert.Equal(t, "4100.25", fund.NetPaymentAmount.String())
}

func TestMutualFundExtract_AmbiguousClassTakesFirstAndWarns(t *testing.T) {
	e := NewMutualFund(config.Default())

	// "CLASE" alone matches both class A and class B entries.
	op, warns, err := e.Extract(model.NormalizedRow{
		Line:       6,
		Descriptor: "SUSCRIPCION",
		Security:   "PELLEGRINI RENTA PESOS",
		ShareClass: "Clase",
	}, testRef(t))
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, model.WarnLookupMiss, warns[0].Kind)
	assert.Contains(t, warns[0].Message, "2 reference entries")
	assert.Equal(t, "PRPA", op.(*model.MutualFund).SecurityName)
}

func TestMutualFundExtract_ClassMissFallsBackToNameLookup(t *testing.T) {
	e := NewMutualFund(config.Default())
	ref := testRef(t)

	// Class lookup misses, plain name lookup hits.
	op, warns, err := e.Extract(model.NormalizedRow{
		Descriptor: "SUSCRIPCION",
		Security:   "PELLEGRINI RENTA PESOS - Clase A",
		ShareClass: "Z",
	}, ref)
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, "PRPA", op.(*model.MutualFund).SecurityName)

	// Both lookups miss: raw name plus a warning.
	op, warns, err = e.Extract(model.NormalizedRow{
		Line:       8,
		Descriptor: "RESCATE",
		Security:   "FONDO INEXISTENTE",
		ShareClass: "A",
	}, ref)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Equal(t, model.WarnLookupMiss, warns[0].Kind)
	assert.Equal(t, "FONDO INEXISTENTE", op.(*model.MutualFund).SecurityName)
}

func TestMutualFundExtract_NullableFieldsStayNull(t *testing.T) {
	e := NewMutualFund(config.Default())

	op, _, err := e.Extract(model.NormalizedRow{Descriptor: "SUSCRIPCION"}, testRef(t))
	require.NoError(t, err)

	fund := op.(*model.MutualFund)
	assert.Nil(t, fund.AgreementDate)
	assert.Nil(t, fund.SettlementDate)
	assert.Nil(t, fund.SettlementTerm)
	assert.Nil(t, fund.SecurityAmount)
	assert.Nil(t, fund.NetPaymentAmount)
	assert.Empty(t, fund.SecurityName)
}

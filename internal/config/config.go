package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level brokerfeed.yaml configuration.
type Config struct {
	DefaultCurrency string              `yaml:"default_currency"`
	LogLevel        string              `yaml:"log_level"`
	Workers         int                 `yaml:"workers"`
	Exchanges       ExchangesConfig     `yaml:"exchanges"`
	ColumnAliases   map[string][]string `yaml:"column_aliases,omitempty"`
	Vocabulary      Vocabulary          `yaml:"vocabulary"`
}

// ExchangesConfig names the trading venues stamped onto output records.
type ExchangesConfig struct {
	Trade string `yaml:"trade"`
	Fund  string `yaml:"fund"`
}

// ConceptRule maps a descriptor keyword to a security-flow concept tag.
// Rules are an ordered list so matching stays deterministic.
type ConceptRule struct {
	Keyword string `yaml:"keyword"`
	Tag     string `yaml:"tag"`
}

// Vocabulary holds the keyword lists driving classification and extraction.
// The broker terminology is locale-specific and not exhaustive, so it lives
// in configuration rather than code. Matching is case- and accent-insensitive.
type Vocabulary struct {
	Income       []string      `yaml:"income"`
	Subscription []string      `yaml:"subscription"`
	Redemption   []string      `yaml:"redemption"`
	Buy          []string      `yaml:"buy"`
	Sell         []string      `yaml:"sell"`
	Trade        []string      `yaml:"trade"`
	Deposit      []string      `yaml:"deposit"`
	Withdrawal   []string      `yaml:"withdrawal"`
	Fee          []string      `yaml:"fee"`
	Interest     []string      `yaml:"interest"`
	Transfer     []string      `yaml:"transfer"`
	Concepts     []ConceptRule `yaml:"concepts"`
}

// CashMovement returns the union of all cash-movement keyword lists.
func (v Vocabulary) CashMovement() []string {
	var all []string
	for _, list := range [][]string{v.Deposit, v.Withdrawal, v.Fee, v.Interest, v.Transfer} {
		all = append(all, list...)
	}
	return all
}

// Load reads a brokerfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Canonical field names used as column-alias keys.
const (
	FieldAgreementDate  = "agreement_date"
	FieldSettlementDate = "settlement_date"
	FieldDescription    = "description"
	FieldQuantity       = "quantity"
	FieldPrice          = "price"
	FieldAmount         = "amount"
	FieldGrossAmount    = "gross_amount"
	FieldChargeAmount   = "charge_amount"
	FieldCurrency       = "currency"
	FieldSecurity       = "security"
	FieldISIN           = "isin"
	FieldShareClass     = "share_class"
	FieldAccount        = "account"
	FieldCounterparty   = "counterparty"
	FieldTransactionID  = "transaction_id"
)

// Default returns a Config seeded with the Argentine broker vocabulary and
// the column headers seen in Pellegrini-style exports. Alias matching is
// accent-insensitive, so only one spelling per header is listed.
func Default() *Config {
	return &Config{
		DefaultCurrency: "ARS",
		LogLevel:        "info",
		Workers:         1,
		Exchanges: ExchangesConfig{
			Trade: "BYMA",
			Fund:  "Mercado de Fondos",
		},
		ColumnAliases: map[string][]string{
			FieldAgreementDate:  {"Fecha de Concertación", "Fecha Concertación", "Fecha"},
			FieldSettlementDate: {"Fecha de Liquidación", "Fecha Liquidación"},
			FieldDescription:    {"Tipo de Liquidación", "Descripción", "Detalle", "Concepto"},
			FieldQuantity:       {"Cuotapartes", "Cantidad", "Nominales"},
			FieldPrice:          {"Valor Cuota", "Precio", "Cotización"},
			FieldAmount:         {"Inversión Neta", "Importe Neto", "Importe", "Monto"},
			FieldGrossAmount:    {"Importe Bruto", "Bruto"},
			FieldChargeAmount:   {"Comisión", "Gastos"},
			FieldCurrency:       {"Moneda", "Divisa"},
			FieldSecurity:       {"Especie", "Instrumento", "Fondo", "Título"},
			FieldISIN:           {"ISIN"},
			FieldShareClass:     {"Tipo de Cuota", "Clase"},
			FieldAccount:        {"Cuenta", "Cuenta Comitente"},
			FieldCounterparty:   {"Contraparte", "Comitente"},
			FieldTransactionID:  {"Número", "Nro. Operación", "Comprobante"},
		},
		Vocabulary: Vocabulary{
			Income:       []string{"DIVIDENDO", "CUPON", "RENTA DE TITULOS"},
			Subscription: []string{"SUSCRIPCION"},
			Redemption:   []string{"RESCATE"},
			Buy:          []string{"COMPRA"},
			Sell:         []string{"VENTA"},
			Trade:        []string{"TRADE"},
			Deposit:      []string{"DEPOSITO", "FONDEO"},
			Withdrawal:   []string{"RETIRO", "EXTRACCION"},
			Fee:          []string{"COMISION", "ARANCEL", "FEE"},
			Interest:     []string{"INTERES"},
			Transfer:     []string{"TRANSFERENCIA"},
			Concepts: []ConceptRule{
				{Keyword: "CARGA INICIAL", Tag: "Carga inicial"},
				{Keyword: "CANJE", Tag: "Canje"},
				{Keyword: "TRANSFERENCIA DE TITULOS", Tag: "Transferencia de títulos"},
			},
		},
	}
}

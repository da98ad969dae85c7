package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invorya/stock-ledger/internal/domain/stock"
)

// Umbrales de referencia: min=10, max=100.

func TestSeverity_BalanceCeroONegativo_Agotado(t *testing.T) {
	sev, threshold := stock.Severity(0, 10, 100)
	assert.Equal(t, stock.SeverityOutOfStock, sev)
	assert.EqualValues(t, 0, threshold, "el umbral de agotado siempre es 0")

	sev, _ = stock.Severity(-5, 10, 100)
	assert.Equal(t, stock.SeverityOutOfStock, sev, "balance negativo también es agotado")
}

func TestSeverity_BalanceEnElMinimo_BajoStock(t *testing.T) {
	sev, threshold := stock.Severity(10, 10, 100)
	assert.Equal(t, stock.SeverityLowStock, sev, "q == min es bajo stock (q <= min)")
	assert.EqualValues(t, 10, threshold)

	sev, _ = stock.Severity(1, 10, 100)
	assert.Equal(t, stock.SeverityLowStock, sev)
}

func TestSeverity_BalanceSobreElMaximo_SobreStock(t *testing.T) {
	sev, threshold := stock.Severity(101, 10, 100)
	assert.Equal(t, stock.SeverityOverstock, sev)
	assert.EqualValues(t, 100, threshold)
}

func TestSeverity_BalanceEnElMaximo_Normal(t *testing.T) {
	// q > max dispara sobre-stock; q == max todavía es normal.
	sev, threshold := stock.Severity(100, 10, 100)
	assert.Equal(t, stock.SeverityNormal, sev)
	assert.EqualValues(t, 0, threshold)
}

func TestSeverity_BalanceEnZonaNormal(t *testing.T) {
	sev, _ := stock.Severity(50, 10, 100)
	assert.Equal(t, stock.SeverityNormal, sev)
}

func TestSeverity_PrioridadAgotadoSobreBajoStock(t *testing.T) {
	// q <= 0 siempre gana aunque también cumpla q <= min.
	sev, threshold := stock.Severity(0, 10, 100)
	assert.Equal(t, stock.SeverityOutOfStock, sev)
	assert.EqualValues(t, 0, threshold)
}

func TestSeverity_MinimoCero_SoloAgotado(t *testing.T) {
	// Con min=0, q=0 es agotado y q=1 ya es normal (no hay zona de bajo stock).
	sev, _ := stock.Severity(0, 0, 100)
	assert.Equal(t, stock.SeverityOutOfStock, sev)

	sev, _ = stock.Severity(1, 0, 100)
	assert.Equal(t, stock.SeverityNormal, sev)
}

package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// TestPackBreakdown verifica el texto de desglose que ve el usuario en la
// pantalla de revisión: "2 x 24" explica de dónde salieron 48 unidades.
func TestPackBreakdown(t *testing.T) {
	conEmpaque := entity.InvoiceItem{OriginalQuantity: 2, DetectedPackSize: 24, Quantity: 48}
	assert.Equal(t, "2 x 24", conEmpaque.PackBreakdown())

	sinEmpaque := entity.InvoiceItem{OriginalQuantity: 5, DetectedPackSize: 1, Quantity: 5}
	assert.Equal(t, "", sinEmpaque.PackBreakdown(), "pack size 1 no lleva desglose")

	sinOriginal := entity.InvoiceItem{OriginalQuantity: 0, DetectedPackSize: 12, Quantity: 12}
	assert.Equal(t, "", sinOriginal.PackBreakdown(), "sin cantidad original no hay desglose que explicar")
}

// TestIsLowStock verifica el umbral inclusivo: en el mínimo ya se está en
// reposición.
func TestIsLowStock(t *testing.T) {
	p := entity.Product{Quantity: 10, MinStock: 10}
	assert.True(t, p.IsLowStock(), "cantidad igual al mínimo cuenta como bajo stock")

	p.Quantity = 11
	assert.False(t, p.IsLowStock())

	p.Quantity = 0
	assert.True(t, p.IsLowStock())
}

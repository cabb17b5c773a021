package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/domain"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
	"github.com/jhoicas/abasto-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// SupplierRegistrar — dedupe por RIF y por nombre
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaProveedorNuevo(t *testing.T) {
	store := memory.New()
	r := ingest.NewSupplierRegistrar(store.Suppliers())

	s, err := r.Register("Distribuidora Polar C.A.", "J-12345678-9")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Distribuidora Polar C.A.", s.Name)
	assert.Equal(t, "J-12345678-9", s.RIF)
	assert.False(t, s.FirstSeen.IsZero(), "FirstSeen debe quedar sellado al crear")
}

func TestRegister_MismoRIFNoDuplicaAunqueElNombreCambie(t *testing.T) {
	store := memory.New()
	r := ingest.NewSupplierRegistrar(store.Suppliers())

	s1, err := r.Register("Distribuidora Polar C.A.", "J-12345678-9")
	require.NoError(t, err)

	// Segunda factura: mismo RIF, razón social impresa distinta.
	s2, err := r.Register("DIST. POLAR", "J-12345678-9")
	require.NoError(t, err)

	assert.Equal(t, s1.ID, s2.ID, "el RIF identifica al proveedor")
	assert.Equal(t, "Distribuidora Polar C.A.", s2.Name,
		"el registro existente no se muta con el nombre de la factura nueva")

	all, err := store.Suppliers().List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_FallbackPorNombreInsensibleAMayusculas(t *testing.T) {
	store := memory.New()
	r := ingest.NewSupplierRegistrar(store.Suppliers())

	s1, err := r.Register("Alimentos La Gran Parada", "")
	require.NoError(t, err)
	assert.Equal(t, entity.UnknownRIF, s1.RIF, "RIF vacío se guarda como N/A")

	s2, err := r.Register("ALIMENTOS LA GRAN PARADA", "")
	require.NoError(t, err)
	assert.Equal(t, s1.ID, s2.ID, "mismo nombre (case-insensitive) no duplica")
}

// TestRegister_RIFDesconocidoNoFusionaProveedoresDistintos cubre el caso de dos
// facturas sin RIF legible: ambas llevan el marcador N/A, pero eso no puede
// hacer que dos proveedores con nombres distintos terminen fusionados.
func TestRegister_RIFDesconocidoNoFusionaProveedoresDistintos(t *testing.T) {
	store := memory.New()
	r := ingest.NewSupplierRegistrar(store.Suppliers())

	s1, err := r.Register("Carnicería El Toro", "")
	require.NoError(t, err)
	s2, err := r.Register("Panadería La Espiga", "")
	require.NoError(t, err)

	assert.NotEqual(t, s1.ID, s2.ID,
		"el RIF N/A es desconocido, no una clave de dedupe")

	all, err := store.Suppliers().List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegister_NombreVacioEsError(t *testing.T) {
	store := memory.New()
	r := ingest.NewSupplierRegistrar(store.Suppliers())

	_, err := r.Register("   ", "J-12345678-9")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

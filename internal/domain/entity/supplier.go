package entity

import "time"

// UnknownRIF marcador para facturas sin identificación fiscal legible. No es
// una clave de dedupe: dos proveedores con RIF N/A solo se consideran el mismo
// si el nombre coincide.
const UnknownRIF = "N/A"

// Supplier proveedor registrado automáticamente al conciliar facturas.
// FirstSeen se sella en el alta y no se muta en facturas posteriores.
type Supplier struct {
	ID        string
	Name      string
	RIF       string // J-12345678-9, o UnknownRIF
	FirstSeen time.Time
}

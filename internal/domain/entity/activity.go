package entity

import "time"

// Tipos de movimiento del registro de actividad.
const (
	ActivityIN         = "IN"         // entrada por factura o alta manual
	ActivityOUT        = "OUT"        // salida manual de stock
	ActivityADJUSTMENT = "ADJUSTMENT" // corrección manual de cantidad (delta)
	ActivityIMPORT     = "IMPORT"     // resumen de una importación CSV
)

// Activity entrada del registro de actividad. El registro es de solo anexado:
// las entradas no se editan ni se borran.
type Activity struct {
	ID          string
	Type        string
	Description string
	Amount      int // unidades del movimiento; en ADJUSTMENT puede ser negativo
	CreatedAt   time.Time
}

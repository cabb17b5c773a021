package dto

import "github.com/shopspring/decimal"

// ScanRequest imagen de factura a extraer (base64, sin prefijo data:).
type ScanRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"` // image/jpeg, image/png, application/pdf
}

// ScanItemDTO línea extraída, ya pasada por la resolución de alias.
// Quantity = OriginalQuantity × DetectedPackSize salvo que el usuario la edite
// en la pantalla de revisión.
type ScanItemDTO struct {
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	OriginalQuantity int             `json:"original_quantity"`
	DetectedPackSize int             `json:"detected_pack_size"`
	Breakdown        string          `json:"breakdown,omitempty"` // "2 x 24"
	Price            decimal.Decimal `json:"price"`               // en la moneda de la factura
	Category         string          `json:"category"`
	Confidence       *float64        `json:"confidence,omitempty"`
	Matched          bool            `json:"matched"` // true si el alias apuntó a un producto existente
}

// ScanSupplierDTO proveedor detectado en la factura.
type ScanSupplierDTO struct {
	Name string `json:"name"`
	RIF  string `json:"rif"`
}

// ScanResponse resultado de la extracción, listo para revisión del usuario.
type ScanResponse struct {
	Items         []ScanItemDTO    `json:"items"`
	Supplier      *ScanSupplierDTO `json:"supplier,omitempty"`
	Currency      string           `json:"currency"`
	SuggestedRate *decimal.Decimal `json:"suggested_rate,omitempty"` // Bs/USD; ausente si la fuente falló
}

// ConfirmScanRequest ítems revisados por el usuario, a conciliar contra el catálogo.
type ConfirmScanRequest struct {
	Items    []ScanItemDTO    `json:"items"`
	Supplier *ScanSupplierDTO `json:"supplier"`
	Currency string           `json:"currency"`
	Rate     decimal.Decimal  `json:"rate"` // Bs/USD; obligatoria si currency es Bs
}

// ReconcileResponse resumen de la conciliación más el catálogo refrescado.
type ReconcileResponse struct {
	Created  int               `json:"created"`
	Updated  int               `json:"updated"`
	Supplier *SupplierResponse `json:"supplier,omitempty"`
	Products []ProductResponse `json:"products"`
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa InvoiceExtractor.
var _ ports.InvoiceExtractor = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// extractionPrompt define el rol del modelo y el formato de salida.
	// response_mime_type=application/json obliga a Gemini a devolver JSON puro,
	// eliminando la necesidad de limpiar bloques de markdown.
	extractionPrompt = `Eres un asistente de inventario para un abasto en Venezuela.
Analiza la imagen de esta factura de compra y devuelve ÚNICAMENTE un objeto JSON con esta estructura exacta:
{
  "items": [
    {
      "product_name": "<nombre del producto tal como aparece>",
      "original_quantity": <cantidad impresa en la factura>,
      "detected_pack_size": <multiplicador de empaque si aparece notación tipo "x24" o "bulto de 12"; 1 si no hay>,
      "quantity": <original_quantity * detected_pack_size, unidades físicas totales>,
      "price": <precio UNITARIO como número decimal>,
      "category": "<categoría sugerida en español: Alimentos, Bebidas, Limpieza, etc.>",
      "confidence": <número entre 0.0 y 1.0>
    }
  ],
  "supplier": {"name": "<razón social impresa o cadena vacía>", "rif": "<RIF impreso (J-12345678-9) o cadena vacía>"},
  "currency": "<"Bs" si los montos están en bolívares, "USD" si están en dólares>"
}

Reglas:
- quantity SIEMPRE debe ser original_quantity * detected_pack_size.
- Si el precio impreso es por bulto, divide entre detected_pack_size para obtener el unitario.
- No inventes líneas: si una fila es ilegible, omítela y baja confidence en las dudosas.
- No incluyas texto fuera del JSON.`
)

// GeminiService adaptador que implementa InvoiceExtractor llamando a la API
// REST de Google Gemini con la imagen en línea. Usa únicamente net/http.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// Si apiKey está vacío, las llamadas devuelven error descriptivo en vez de
// fallar en producción.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 40 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *geminiInline `json:"inline_data,omitempty"`
}

type geminiInline struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// invoicePayload es el JSON que esperamos recibir del modelo.
type invoicePayload struct {
	Items []struct {
		ProductName      string          `json:"product_name"`
		OriginalQuantity int             `json:"original_quantity"`
		DetectedPackSize int             `json:"detected_pack_size"`
		Quantity         int             `json:"quantity"`
		Price            decimal.Decimal `json:"price"`
		Category         string          `json:"category"`
		Confidence       *float64        `json:"confidence"`
	} `json:"items"`
	Supplier struct {
		Name string `json:"name"`
		RIF  string `json:"rif"`
	} `json:"supplier"`
	Currency string `json:"currency"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractInvoice envía la imagen de la factura a Gemini y devuelve el payload
// estructurado. Completa los derivados que el modelo deje a medias: pack size
// mínimo 1 y quantity = original_quantity * detected_pack_size si falta.
func (s *GeminiService) ExtractInvoice(ctx context.Context, imageBase64, mimeType string) (*entity.InvoiceData, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: extractionPrompt}},
		},
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &geminiInline{MimeType: mimeType, Data: imageBase64}},
					{Text: "Extrae las líneas de esta factura."},
				},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  4096,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	var extracted invoicePayload
	text := gemResp.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &extracted); err != nil {
		return nil, fmt.Errorf("AI: el modelo no devolvió el JSON esperado: %w", err)
	}

	return toInvoiceData(extracted), nil
}

// toInvoiceData normaliza el payload del modelo al shape del dominio,
// garantizando quantity = original_quantity * detected_pack_size.
func toInvoiceData(p invoicePayload) *entity.InvoiceData {
	data := &entity.InvoiceData{Currency: p.Currency}
	for _, raw := range p.Items {
		if strings.TrimSpace(raw.ProductName) == "" {
			continue
		}
		item := entity.InvoiceItem{
			ProductName:      strings.TrimSpace(raw.ProductName),
			OriginalQuantity: raw.OriginalQuantity,
			DetectedPackSize: raw.DetectedPackSize,
			Quantity:         raw.Quantity,
			Price:            raw.Price,
			Category:         strings.TrimSpace(raw.Category),
			Confidence:       raw.Confidence,
		}
		if item.DetectedPackSize < 1 {
			item.DetectedPackSize = 1
		}
		if item.OriginalQuantity < 0 {
			item.OriginalQuantity = 0
		}
		if item.Quantity <= 0 && item.OriginalQuantity > 0 {
			item.Quantity = item.OriginalQuantity * item.DetectedPackSize
		}
		data.Items = append(data.Items, item)
	}
	if strings.TrimSpace(p.Supplier.Name) != "" {
		data.Supplier = &entity.InvoiceSupplier{
			Name: strings.TrimSpace(p.Supplier.Name),
			RIF:  strings.TrimSpace(p.Supplier.RIF),
		}
	}
	return data
}

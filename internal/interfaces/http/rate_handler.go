package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/abasto-api/internal/application/dto"
	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/domain/currency"
)

// RateHandler expone la tasa de cambio Bs/USD vigente.
type RateHandler struct {
	rates ports.RateSource
}

// NewRateHandler construye el handler.
func NewRateHandler(rates ports.RateSource) *RateHandler {
	return &RateHandler{rates: rates}
}

// Current godoc
// @Summary      Tasa de cambio Bs/USD vigente
// @Tags         rates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RateResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/rates/current [get]
func (h *RateHandler) Current(c *fiber.Ctx) error {
	rate, err := h.rates.CurrentRate(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "RATE_UNAVAILABLE", Message: "la fuente de tasa no está disponible"})
	}
	return c.JSON(dto.RateResponse{
		Currency:  currency.Bs,
		Rate:      rate,
		FetchedAt: time.Now(),
	})
}

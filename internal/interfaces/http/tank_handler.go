package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/produccion-glp-api/internal/application/dto"
	"github.com/jhoicas/produccion-glp-api/internal/domain/entity"
	"github.com/jhoicas/produccion-glp-api/pkg/logger"
	"github.com/shopspring/decimal"
)

type tankTools interface {
	ListTanks(ctx context.Context, centerID string) ([]*entity.TankConfig, error)
	Calculate(ctx context.Context, centerID, tankID string, in dto.TankCalculateRequest) (*dto.TankReadingResponse, error)
	SphericalVolume(ctx context.Context, centerID, tankID string, heightMM decimal.Decimal) (*dto.TankVolumeResponse, error)
	CorrectionFactors(temperature decimal.Decimal) dto.CorrectionFactorsResponse
}

// TankConfigResponse reservorio configurado del centro.
type TankConfigResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Shape          string           `json:"shape"`
	Mode           string           `json:"mode"`
	CapacityVolume decimal.Decimal  `json:"capacity_volume"`
	CapacityWeight *decimal.Decimal `json:"capacity_weight,omitempty"`
}

// TankHandler ayudas de cálculo de reservorios (sin persistencia).
type TankHandler struct {
	uc  tankTools
	log *logger.Logger
}

// NewTankHandler construye el handler.
func NewTankHandler(uc tankTools, log *logger.Logger) *TankHandler {
	return &TankHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Reservorios configurados del centro
// @Tags         tanks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  TankConfigResponse
// @Router       /api/tanks [get]
func (h *TankHandler) List(c *fiber.Ctx) error {
	centerID := CenterScope(c)
	if centerID == "" {
		return unauthorized(c)
	}
	tanks, err := h.uc.ListTanks(c.Context(), centerID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out := make([]TankConfigResponse, 0, len(tanks))
	for _, t := range tanks {
		out = append(out, TankConfigResponse{
			ID: t.ID, Name: t.Name, Shape: t.Shape, Mode: t.Mode,
			CapacityVolume: t.CapacityVolume, CapacityWeight: t.CapacityWeight,
		})
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Vista previa del cálculo de un reservorio
// @Description  Aplica las mismas reglas que el cierre (modo estricto) sin guardar nada.
// @Tags         tanks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la configuración del reservorio"
// @Param        body  body  dto.TankCalculateRequest  true  "Lectura"
// @Success      200   {object}  dto.TankReadingResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/tanks/{id}/calculate [post]
func (h *TankHandler) Calculate(c *fiber.Ctx) error {
	var in dto.TankCalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Calculate(c.Context(), CenterScope(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Volume godoc
// @Summary      Volumen líquido estimado de una esfera a partir de la altura
// @Tags         tanks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la configuración del reservorio"
// @Param        body  body  dto.TankVolumeRequest  true  "Altura en mm"
// @Success      200   {object}  dto.TankVolumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tanks/{id}/volume [post]
func (h *TankHandler) Volume(c *fiber.Ctx) error {
	var in dto.TankVolumeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SphericalVolume(c.Context(), CenterScope(c), c.Params("id"), in.Height)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CorrectionFactors godoc
// @Summary      Factores de corrección para una temperatura
// @Tags         tanks
// @Security     Bearer
// @Produce      json
// @Param        temperature  query  number  true  "Temperatura en °C"
// @Success      200  {object}  dto.CorrectionFactorsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/correction-factors [get]
func (h *TankHandler) CorrectionFactors(c *fiber.Ctx) error {
	t, err := decimal.NewFromString(c.Query("temperature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "temperature numérica requerida"})
	}
	return c.JSON(h.uc.CorrectionFactors(t))
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/application/usecase"
	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
)

// AssetHandler maneja el directorio de bienes y sus cambios de custodia (protegido).
type AssetHandler struct {
	assets  *usecase.AssetUseCase
	custody *workflow.CustodyUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(assets *usecase.AssetUseCase, custody *workflow.CustodyUseCase) *AssetHandler {
	return &AssetHandler{assets: assets, custody: custody}
}

// List godoc
// @Summary      Listar bienes
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AssetResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	out, err := h.assets.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar bien
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Datos del bien"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.assets.Create(c.Context(), actorFrom(c).Role, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bien por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del bien"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.assets.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Registrar devolución de un bien
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID del bien"
// @Param        body  body  dto.ReturnAssetRequest  false  "Quién devuelve y notas"
// @Success      200   {object}  dto.AssetActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/return [put]
func (h *AssetHandler) Return(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReturnAssetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.custody.Return(c.Context(), actorFrom(c), id, workflow.ReturnInput{
		ReturnedBy: in.ReturnedBy,
		Notes:      in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AssetActionResponse{Message: "Bien devuelto exitosamente", Asset: *out})
}

// Maintenance godoc
// @Summary      Enviar bien a mantenimiento
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID del bien"
// @Param        body  body  dto.MaintenanceRequest  false  "Autorización y motivo"
// @Success      200   {object}  dto.AssetActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/maintenance [put]
func (h *AssetHandler) Maintenance(c *fiber.Ctx) error {
	return h.statusChange(c, h.custody.SendToMaintenance, "Bien enviado a mantenimiento")
}

// Repair godoc
// @Summary      Cerrar reparación de un bien
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID del bien"
// @Param        body  body  dto.MaintenanceRequest  false  "Autorización y notas"
// @Success      200   {object}  dto.AssetActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/repair [put]
func (h *AssetHandler) Repair(c *fiber.Ctx) error {
	return h.statusChange(c, h.custody.CompleteRepair, "Reparación registrada, bien disponible")
}

type maintenanceFn func(ctx context.Context, actor workflow.Actor, assetID int64, in workflow.MaintenanceInput) (*dto.AssetResponse, error)

func (h *AssetHandler) statusChange(c *fiber.Ctx, fn maintenanceFn, message string) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.MaintenanceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := fn(c.Context(), actorFrom(c), id, workflow.MaintenanceInput{
		AuthorizedBy: in.AuthorizedBy,
		Reason:       in.Reason,
		Notes:        in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AssetActionResponse{Message: message, Asset: *out})
}

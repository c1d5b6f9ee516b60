package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cuentadante-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los conteos de bienes, solicitudes y movimientos.
// GET /api/dashboard/stats
//
// @Summary      Estadísticas del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// GetExpiringAssets devuelve los bienes asignados vencidos o próximos a vencer.
// GET /api/dashboard/expiring-assets
//
// Cada bien trae return_status (vencido | por_vencer | en_tiempo) y days_remaining.
//
// @Summary      Bienes por vencer
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpiringAssetDTO
// @Router       /api/dashboard/expiring-assets [get]
func (h *DashboardHandler) GetExpiringAssets(c *fiber.Ctx) error {
	out, err := h.uc.ExpiringAssets(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

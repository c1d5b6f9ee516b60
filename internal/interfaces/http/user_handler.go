package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentadante-api/internal/application/usecase"
)

// UserHandler consultas de usuarios (protegido).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), actorFrom(c).Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

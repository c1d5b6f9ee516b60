package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
)

// RequestHandler maneja solicitudes de préstamo y sus decisiones (protegido).
type RequestHandler struct {
	intake   *workflow.IntakeUseCase
	approval *workflow.ApprovalUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(intake *workflow.IntakeUseCase, approval *workflow.ApprovalUseCase) *RequestHandler {
	return &RequestHandler{intake: intake, approval: approval}
}

// List godoc
// @Summary      Listar solicitudes
// @Description  Incluye los datos del bien; más recientes primero.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RequestResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.intake.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear solicitud de préstamo
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "Bien, solicitante y motivo"
// @Success      200   {object}  dto.CreateRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.intake.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CreateRequestResponse{
		Message: "Solicitud creada exitosamente",
		Request: *out,
	})
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.intake.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  Con "role" registra la aprobación de ese rol; sin "role" aprueba en un solo paso y asigna el bien.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true   "ID de la solicitud"
// @Param        body  body  dto.DecisionRequest  false  "role | approved_by, notes"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [put]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	in, err := parseDecision(c)
	if err != nil {
		return badBody(c)
	}
	var out *dto.RequestResponse
	if role := strings.TrimSpace(in.Role); role != "" {
		out, err = h.approval.ApproveAsRole(c.Context(), actorFrom(c), id, role, in.Notes)
	} else {
		out, err = h.approval.Approve(c.Context(), actorFrom(c), id, workflow.ApproveInput{
			ApprovedBy: in.ApprovedBy,
			Notes:      in.Notes,
		})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DecisionResponse{Message: "Solicitud aprobada exitosamente", Request: *out})
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Description  Con "role" y "reason" rechaza por rol; sin "role" usa rejected_by y rejection_reason.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la solicitud"
// @Param        body  body  dto.DecisionRequest  true  "role, reason | rejected_by, rejection_reason"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [put]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	in, err := parseDecision(c)
	if err != nil {
		return badBody(c)
	}
	reason := in.RejectionReason
	if strings.TrimSpace(reason) == "" {
		reason = in.Reason
	}
	var out *dto.RequestResponse
	if role := strings.TrimSpace(in.Role); role != "" {
		out, err = h.approval.RejectAsRole(c.Context(), actorFrom(c), id, role, reason)
	} else {
		out, err = h.approval.Reject(c.Context(), actorFrom(c), id, workflow.RejectInput{
			RejectedBy: in.RejectedBy,
			Reason:     reason,
		})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DecisionResponse{Message: "Solicitud rechazada exitosamente", Request: *out})
}

// parseDecision lee el cuerpo; vacío equivale a una decisión sin campos.
func parseDecision(c *fiber.Ctx) (dto.DecisionRequest, error) {
	var in dto.DecisionRequest
	if len(c.Body()) == 0 {
		return in, nil
	}
	err := c.BodyParser(&in)
	return in, err
}

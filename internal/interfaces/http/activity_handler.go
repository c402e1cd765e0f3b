package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ActivityHandler lectura del log de actividad (solo lectura: el log se
// alimenta desde los usecases, nunca por HTTP directo).
type ActivityHandler struct {
	uc *usecase.ActivityLogger
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Actividad reciente de la sección (más reciente primero)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	out, err := h.uc.List(c.Context(), section, limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

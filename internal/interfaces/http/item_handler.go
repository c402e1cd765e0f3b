package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP para items de inventario (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar items de la sección
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Param        cursor   query  string  false  "Cursor de la página anterior"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
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
	out, err := h.uc.List(c.Context(), section, dto.PageRequest{Limit: limit, Cursor: c.Query("cursor")})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del item"
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	out, err := h.uc.Get(c.Context(), c.Params("id"), section)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Section == "" {
		in.Section = GetSection(c)
	}
	if GetRole(c) != RoleAdmin && in.Section != GetSection(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	if in.OwnerID == "" {
		in.OwnerID = GetUserID(c)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar item (la categoría no cambia por esta vía)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), section, in)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(out)
}

// ReplaceCategory godoc
// @Summary      Cambiar la categoría de un item (operación estructural)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.ReplaceCategoryRequest  true  "Nueva categoría"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/category [put]
func (h *ItemHandler) ReplaceCategory(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	var in dto.ReplaceCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category es requerido"})
	}
	out, err := h.uc.ReplaceCategory(c.Context(), GetUserID(c), c.Params("id"), section, in.Category)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	deleted, err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id"), section)
	if err != nil {
		return domainError(c, err)
	}
	// Borrar un item ausente es éxito: el estado final es el mismo.
	return c.JSON(fiber.Map{"deleted": deleted})
}

// ListLowStock godoc
// @Summary      Items en o por debajo del mínimo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items/low-stock [get]
func (h *ItemHandler) ListLowStock(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	out, err := h.uc.ListLowStock(c.Context(), section)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

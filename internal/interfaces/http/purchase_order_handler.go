package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// PurchaseOrderHandler órdenes de compra y su máquina de estados.
type PurchaseOrderHandler struct {
	uc *inventory.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *inventory.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (DRAFT o PENDING)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePORequest  true  "Líneas y proveedor"
// @Success      201  {object}  dto.POResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Section == "" {
		in.Section = GetSection(c)
	}
	if GetRole(c) != RoleAdmin && in.Section != GetSection(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Param        status   query  string  false  "Filtrar por estado"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.POListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), section, c.Query("status"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener orden de compra por ID
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.POResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *fiber.Ctx) error {
	out, resp := h.findScoped(c)
	if out == nil {
		return resp
	}
	return c.JSON(out)
}

// findScoped carga la orden por id y verifica que su sección esté dentro del
// alcance del token. Si la orden no existe o está fuera de alcance, escribe la
// respuesta (404/403) y devuelve nil.
func (h *PurchaseOrderHandler) findScoped(c *fiber.Ctx) (*dto.POResponse, error) {
	po, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return nil, domainError(c, err)
	}
	if po == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	if GetRole(c) != RoleAdmin && po.Section != GetSection(c) {
		return nil, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	return po, nil
}

// Update godoc
// @Summary      Actualizar orden de compra (verificación optimista por estado)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePORequest  true  "Campos a actualizar; current_status es obligatorio"
// @Success      200  {object}  dto.POResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if po, resp := h.findScoped(c); po == nil {
		return resp
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden (DRAFT o PENDING)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.POResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *fiber.Ctx) error {
	if po, resp := h.findScoped(c); po == nil {
		return resp
	}
	out, err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir orden (total o parcial) e incrementar stock
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceivePORequest  true  "Líneas recibidas"
// @Success      200  {object}  dto.POResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lines es requerido"})
	}
	if po, resp := h.findScoped(c); po == nil {
		return resp
	}
	out, err := h.uc.Receive(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

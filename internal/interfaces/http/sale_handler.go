package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

// SaleHandler transacciones de salida de stock (venta, uso interno, daño, vencimiento).
type SaleHandler struct {
	uc *inventory.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar una transacción y decrementar stock
// @Description  Reintentable con la misma idempotency_key: la repetición devuelve la transacción original.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Líneas y tipo"
// @Success      201  {object}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Section == "" {
		in.Section = GetSection(c)
	}
	if GetRole(c) != RoleAdmin && in.Section != GetSection(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	out, err := h.uc.Register(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transacciones de la sección (más recientes primero)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        section  query  string  false  "Sección o tienda (admins)"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
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
	out, err := h.uc.List(c.Context(), section, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	section, ok := scopeSection(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sección fuera del alcance del token"})
	}
	out, err := h.uc.Get(c.Context(), c.Params("id"), section)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// SearchHandler búsqueda libre de items. Maneja su propia autenticación para
// responder siempre con el envelope {error, results, count}: la UI renderiza
// el listado vacío sin ramas especiales.
type SearchHandler struct {
	uc        *usecase.ItemUseCase
	jwtSecret string
}

// NewSearchHandler construye el handler.
func NewSearchHandler(uc *usecase.ItemUseCase, jwtSecret string) *SearchHandler {
	return &SearchHandler{uc: uc, jwtSecret: jwtSecret}
}

// Search godoc
// @Summary      Buscar items por texto libre (insensible a mayúsculas y acentos)
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  true   "Texto a buscar"
// @Param        section   query  string  false  "Sección o tienda"
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.SearchErrorResponse
// @Failure      401  {object}  dto.SearchErrorResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	claims, err := h.authenticate(c)
	if err != nil {
		// Mensaje genérico: no filtra si la sección o tienda existe.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.SearchErrorResponse{
			Error:   "no autorizado",
			Results: []dto.ItemResponse{},
		})
	}

	section := c.Query("section", claims.Section)
	if claims.Role != RoleAdmin && section != claims.Section {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.SearchErrorResponse{
			Error:   "no autorizado",
			Results: []dto.ItemResponse{},
		})
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	out, err := h.uc.Search(c.Context(), c.Query("q"), section, c.Query("category"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.SearchErrorResponse{
				Error:   err.Error(),
				Results: []dto.ItemResponse{},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SearchErrorResponse{
			Error:   "error interno, intente de nuevo",
			Results: []dto.ItemResponse{},
		})
	}
	return c.JSON(out)
}

func (h *SearchHandler) authenticate(c *fiber.Ctx) (*jwt.Claims, error) {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, domain.ErrUnauthorized
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}
	return jwt.Parse(h.jwtSecret, tokenString)
}

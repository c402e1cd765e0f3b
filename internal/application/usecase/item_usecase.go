package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/metrics"
	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

// MaxSearchQueryLength tope de longitud del parámetro q de búsqueda.
const MaxSearchQueryLength = 100

// ItemUseCase motor CRUD de items. El adaptador resuelve la partición física a
// partir de la sección; una sección irresoluble hace fallar la operación con
// domain.ErrResourceNotFound en vez de escribir en un recurso equivocado.
type ItemUseCase struct {
	repo       repository.ItemRepository
	activities *ActivityLogger
	metrics    *metrics.Metrics
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, activities *ActivityLogger, m *metrics.Metrics) *ItemUseCase {
	return &ItemUseCase{repo: repo, activities: activities, metrics: m}
}

// List lista items de una sección ordenados por última actualización.
// Sección vacía devuelve resultado vacío (no error): es el caso "sin filtro"
// de las UIs opcionales.
func (uc *ItemUseCase) List(ctx context.Context, section string, page dto.PageRequest) (out *dto.ItemListResponse, err error) {
	defer func() { uc.metrics.Observe("items_list", err) }()
	if section == "" {
		return &dto.ItemListResponse{Items: []dto.ItemResponse{}}, nil
	}
	page.DefaultPage()
	result, err := uc.repo.ListBySection(ctx, section, page.Limit, page.Cursor)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, NextCursor: result.NextCursor}, nil
}

// Get obtiene un item por id dentro de una sección. nil si no existe.
func (uc *ItemUseCase) Get(ctx context.Context, id, section string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id, section)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Create crea un item; id y timestamp se generan en el servidor.
func (uc *ItemUseCase) Create(ctx context.Context, actor string, in dto.CreateItemRequest) (out *dto.ItemResponse, err error) {
	defer func() { uc.metrics.Observe("items_create", err) }()
	if in.Name == "" || in.Section == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.Item{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Category:        in.Category,
		Quantity:        in.Quantity,
		MinQuantity:     in.MinQuantity,
		UnitPrice:       in.UnitPrice,
		Unit:            in.Unit,
		BatchNumber:     in.BatchNumber,
		Supplier:        in.Supplier,
		Description:     in.Description,
		ExpiryDate:      in.ExpiryDate,
		ManufactureDate: in.ManufactureDate,
		OwnerID:         in.OwnerID,
		Section:         in.Section,
		UpdatedAt:       time.Now().UTC(),
	}
	if err = uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "creó el item "+item.Name, item.ID, entity.ActivityTypeCreate, item.Section)
	return toItemResponse(item), nil
}

// Update read-modify-write preservando Category (la clave de partición del
// recurso): el replace viaja siempre con la clave original. nil si no existe.
func (uc *ItemUseCase) Update(ctx context.Context, actor, id, section string, in dto.UpdateItemRequest) (out *dto.ItemResponse, err error) {
	defer func() { uc.metrics.Observe("items_update", err) }()
	item, err := uc.repo.GetByID(ctx, id, section)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		item.MinQuantity = *in.MinQuantity
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.BatchNumber != nil {
		item.BatchNumber = *in.BatchNumber
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = in.ExpiryDate
	}
	item.UpdatedAt = time.Now().UTC()
	if err = uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.activities.Log(ctx, actor, "actualizó el item "+item.Name, item.ID, entity.ActivityTypeUpdate, item.Section)
	return toItemResponse(item), nil
}

// ReplaceCategory cambia la categoría de un item. Operación estructural:
// delete bajo la clave vieja + insert bajo la nueva. nil si no existe.
func (uc *ItemUseCase) ReplaceCategory(ctx context.Context, actor, id, section, newCategory string) (out *dto.ItemResponse, err error) {
	defer func() { uc.metrics.Observe("items_replace_category", err) }()
	if newCategory == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.repo.ReplaceCategory(ctx, id, section, newCategory)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	uc.activities.Log(ctx, actor, "movió el item "+item.Name+" a la categoría "+newCategory, item.ID, entity.ActivityTypeUpdate, item.Section)
	return toItemResponse(item), nil
}

// Delete elimina un item. false (sin error) si no existe.
func (uc *ItemUseCase) Delete(ctx context.Context, actor, id, section string) (deleted bool, err error) {
	defer func() { uc.metrics.Observe("items_delete", err) }()
	deleted, err = uc.repo.Delete(ctx, id, section)
	if err != nil {
		return false, err
	}
	if deleted {
		uc.activities.Log(ctx, actor, "eliminó el item "+id, id, entity.ActivityTypeDelete, section)
	}
	return deleted, nil
}

// Search búsqueda de texto libre, sin distinción de mayúsculas ni acentos.
func (uc *ItemUseCase) Search(ctx context.Context, query, section, category string, limit int) (out *dto.SearchResponse, err error) {
	defer func() { uc.metrics.Observe("items_search", err) }()
	if len(query) > MaxSearchQueryLength {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	results, total, err := uc.repo.Search(ctx, section, textutil.Fold(query), category, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(results))
	for _, it := range results {
		items = append(items, *toItemResponse(it))
	}
	return &dto.SearchResponse{Results: items, Count: len(items), Total: total, Query: query}, nil
}

// ListLowStock items en o bajo su umbral de reorden (superficie de alertas).
func (uc *ItemUseCase) ListLowStock(ctx context.Context, section string) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, section)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items}, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:              i.ID,
		Name:            i.Name,
		Category:        i.Category,
		Quantity:        i.Quantity,
		MinQuantity:     i.MinQuantity,
		UnitPrice:       i.UnitPrice,
		Unit:            i.Unit,
		BatchNumber:     i.BatchNumber,
		Supplier:        i.Supplier,
		Description:     i.Description,
		ExpiryDate:      i.ExpiryDate,
		ManufactureDate: i.ManufactureDate,
		OwnerID:         i.OwnerID,
		Section:         i.Section,
		Status:          i.Status(),
		UpdatedAt:       i.UpdatedAt,
	}
}

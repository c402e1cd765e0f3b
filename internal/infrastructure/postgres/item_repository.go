package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, quantity, min_quantity, unit_price, unit,
	batch_number, supplier, description, expiry_date, manufacture_date,
	owner_id, section, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
// La sección se resuelve a la tabla física vía el registry antes de cada
// operación; resolución fallida = domain.ErrResourceNotFound, jamás se escribe
// en una tabla sustituta.
type ItemRepo struct {
	q        Querier
	registry repository.ResourceRegistry
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier, registry repository.ResourceRegistry) *ItemRepo {
	return &ItemRepo{q: q, registry: registry}
}

func (r *ItemRepo) table(ctx context.Context, section string) (string, error) {
	resource, err := r.registry.Resolve(ctx, section)
	if err != nil {
		return "", err
	}
	if !validResource(resource) {
		return "", fmt.Errorf("%w: recurso inválido %q para %q", domain.ErrInvalidInput, resource, section)
	}
	return resource, nil
}

// Create persiste un nuevo item en el recurso de su sección.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	table, err := r.table(ctx, item.Section)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`, table, itemColumns)
	_, err = r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Quantity, item.MinQuantity,
		item.UnitPrice, item.Unit, item.BatchNumber, item.Supplier, item.Description,
		item.ExpiryDate, item.ManufactureDate, item.OwnerID, item.Section, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por id. nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id, section string) (*entity.Item, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, itemColumns, table)
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListBySection lista ordenado por updated_at descendente con cursor opaco.
func (r *ItemRepo) ListBySection(ctx context.Context, section string, limit int, cursor string) (*repository.ItemPage, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	offset, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	// limit+1 para saber si hay página siguiente sin un COUNT extra.
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE section = $1
		ORDER BY updated_at DESC, id
		LIMIT $2 OFFSET $3`, itemColumns, table)
	rows, err := r.q.Query(ctx, query, section, limit+1, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	next := ""
	if len(items) > limit {
		items = items[:limit]
		next = encodeCursor(offset + limit)
	}
	return &repository.ItemPage{Items: items, NextCursor: next}, nil
}

// Update reemplaza el registro bajo su clave de partición original: el WHERE
// incluye category, así un replace con clave distinta no toca ninguna fila y
// se rechaza como conflicto en vez de duplicar el registro bajo otra clave.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	table, err := r.table(ctx, item.Section)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET name = $3, quantity = $4, min_quantity = $5, unit_price = $6,
			unit = $7, batch_number = $8, supplier = $9, description = $10,
			expiry_date = $11, updated_at = $12
		WHERE id = $1 AND category = $2`, table)
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.Category, item.Name, item.Quantity, item.MinQuantity,
		item.UnitPrice, item.Unit, item.BatchNumber, item.Supplier, item.Description,
		item.ExpiryDate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Puede ser id inexistente (no-op) o clave de partición desviada.
		exists, err := r.GetByID(ctx, item.ID, item.Section)
		if err != nil {
			return err
		}
		if exists != nil {
			return fmt.Errorf("%w: replace con clave de partición distinta (%s != %s)",
				domain.ErrConflict, item.Category, exists.Category)
		}
	}
	return nil
}

// ReplaceCategory operación estructural: el registro se reubica bajo la nueva
// clave de partición. nil si no existe.
func (r *ItemRepo) ReplaceCategory(ctx context.Context, id, section, newCategory string) (*entity.Item, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET category = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, table, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, id, newCategory))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("replace category: %w", err)
	}
	return item, nil
}

// Delete obtiene la clave del registro y elimina bajo ella. false si no existe.
func (r *ItemRepo) Delete(ctx context.Context, id, section string) (bool, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return false, err
	}
	current, err := r.GetByID(ctx, id, section)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND category = $2`, table)
	cmd, err := r.q.Exec(ctx, query, id, current.Category)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// AdjustQuantity aplica un delta atómico al stock. nil si no existe.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id, section string, delta int) (*entity.Item, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING %s`, table, itemColumns)
	item, err := scanItem(r.q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return item, nil
}

// Search texto libre (query ya plegada) sobre nombre y descripción, con filtro
// opcional por categoría. Usa la extensión unaccent para ignorar acentos.
func (r *ItemRepo) Search(ctx context.Context, section, query, category string, limit int) ([]*entity.Item, int, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 50
	}
	sql := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total FROM %s
		WHERE section = $1
		  AND ($2 = '' OR unaccent(lower(name)) LIKE '%%' || $2 || '%%'
		       OR unaccent(lower(description)) LIKE '%%' || $2 || '%%')
		  AND ($3 = '' OR category = $3)
		ORDER BY updated_at DESC, id
		LIMIT $4`, itemColumns, table)
	rows, err := r.q.Query(ctx, sql, section, query, category, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	var total int
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &it.Quantity, &it.MinQuantity,
			&it.UnitPrice, &it.Unit, &it.BatchNumber, &it.Supplier, &it.Description,
			&it.ExpiryDate, &it.ManufactureDate, &it.OwnerID, &it.Section, &it.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan search row: %w", err)
		}
		items = append(items, &it)
	}
	return items, total, rows.Err()
}

// ListLowStock items con quantity <= min_quantity.
func (r *ItemRepo) ListLowStock(ctx context.Context, section string) ([]*entity.Item, error) {
	table, err := r.table(ctx, section)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE section = $1 AND quantity <= min_quantity
		ORDER BY updated_at DESC, id`, itemColumns, table)
	rows, err := r.q.Query(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Quantity, &it.MinQuantity,
		&it.UnitPrice, &it.Unit, &it.BatchNumber, &it.Supplier, &it.Description,
		&it.ExpiryDate, &it.ManufactureDate, &it.OwnerID, &it.Section, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

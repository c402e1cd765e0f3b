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

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, section, resource, status, is_default, created_at, updated_at`

// StoreRepo registro persistido de tiendas sobre PostgreSQL. El constraint
// único (section, lower(name)) cierra la carrera de creación concurrente.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create inserta la fila; nombre repetido en la sección -> ErrDuplicate.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, section, resource, status, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		store.ID, store.Name, store.Section, store.Resource,
		store.Status, store.IsDefault, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID nil si no existe.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE id = $1`, storeColumns)
	store, err := scanStore(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return store, nil
}

// List por sección; vacío = todas.
func (r *StoreRepo) List(ctx context.Context, section string) ([]*entity.Store, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stores
		WHERE ($1 = '' OR section = $1)
		ORDER BY created_at, id`, storeColumns)
	rows, err := r.q.Query(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, store)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables del registro.
func (r *StoreRepo) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, status = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, store.ID, store.Name, store.Status, store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// Delete false (sin error) si la fila no existe.
func (r *StoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete store: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.Section, &s.Resource, &s.Status, &s.IsDefault, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ResourceProvisioner = (*Provisioner)(nil)

// itemTableDDL esquema de una tabla de items; el mismo que usan las
// migraciones para los recursos estáticos de sección.
const itemTableDDL = `
CREATE TABLE IF NOT EXISTS %s (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	category         TEXT NOT NULL,
	quantity         INTEGER NOT NULL DEFAULT 0,
	min_quantity     INTEGER NOT NULL DEFAULT 0,
	unit_price       NUMERIC(14,2) NOT NULL DEFAULT 0,
	unit             TEXT NOT NULL DEFAULT '',
	batch_number     TEXT NOT NULL DEFAULT '',
	supplier         TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	expiry_date      TIMESTAMPTZ,
	manufacture_date TIMESTAMPTZ,
	owner_id         TEXT NOT NULL DEFAULT '',
	section          TEXT NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS %s_section_updated_idx ON %s (section, updated_at DESC);
CREATE INDEX IF NOT EXISTS %s_category_idx ON %s (category)`

// Provisioner crea y elimina tablas de items para tiendas dinámicas.
type Provisioner struct {
	q Querier
}

// NewProvisioner construye el aprovisionador. Pasar pool o tx (Querier).
func NewProvisioner(q Querier) *Provisioner {
	return &Provisioner{q: q}
}

// Provision crea la tabla si no existe (idempotente).
func (p *Provisioner) Provision(ctx context.Context, resource string) error {
	if !validResource(resource) {
		return fmt.Errorf("%w: nombre de recurso inválido %q", domain.ErrInvalidInput, resource)
	}
	ddl := fmt.Sprintf(itemTableDDL, resource, resource, resource, resource, resource)
	if _, err := p.q.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("provision %s: %w", resource, err)
	}
	return nil
}

// Deprovision elimina la tabla; tabla-ya-ausente cuenta como éxito.
func (p *Provisioner) Deprovision(ctx context.Context, resource string) error {
	if !validResource(resource) {
		return fmt.Errorf("%w: nombre de recurso inválido %q", domain.ErrInvalidInput, resource)
	}
	if _, err := p.q.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, resource)); err != nil {
		return fmt.Errorf("deprovision %s: %w", resource, err)
	}
	return nil
}

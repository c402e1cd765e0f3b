// seed puebla el inventario con datos de ejemplo a través de la misma capa de
// persistencia que usa la API. Acumula éxitos y fallos por registro en vez de
// abortar al primer error, para que una carga parcial sea observable.
//
// Uso: go run ./cmd/seed [-n total] [-section GENERAL]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

var sampleItems = []struct {
	name     string
	category string
	unit     string
	price    string
}{
	{"Arroz blanco 500g", "Granos", "paquete", "2.50"},
	{"Frijol rojo 500g", "Granos", "paquete", "3.10"},
	{"Aceite vegetal 1L", "Aceites", "botella", "5.80"},
	{"Leche en polvo 400g", "Lácteos", "lata", "6.40"},
	{"Atún en lata 170g", "Enlatados", "lata", "2.90"},
	{"Acetaminofén 500mg x10", "Analgésicos", "blíster", "1.20"},
	{"Ibuprofeno 400mg x10", "Analgésicos", "blíster", "1.80"},
	{"Suero oral 500ml", "Hidratación", "botella", "2.10"},
	{"Gasa estéril 10cm", "Curación", "paquete", "0.90"},
	{"Alcohol antiséptico 250ml", "Antisépticos", "botella", "1.50"},
	{"Frazada térmica", "Abrigo", "unidad", "8.00"},
	{"Kit de higiene personal", "Higiene", "kit", "12.00"},
	{"Agua potable 5L", "Hidratación", "bidón", "3.00"},
	{"Linterna de mano", "Equipos", "unidad", "7.50"},
	{"Jabón de barra", "Higiene", "unidad", "0.80"},
}

func main() {
	total := flag.Int("n", 300, "total de items a sembrar")
	section := flag.String("section", "", "sembrar solo en esta sección (vacío = rotar entre las estáticas)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	registry := postgres.NewRegistry(pool)
	if err := registry.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Refresh del registry: %v\n", err)
		os.Exit(1)
	}
	repo := postgres.NewItemRepository(pool, registry)

	sections := entity.StaticSections()
	if *section != "" {
		sections = []string{*section}
	}

	start := time.Now()
	ok, failed := 0, 0
	for i := 0; i < *total; i++ {
		sample := sampleItems[i%len(sampleItems)]
		sec := sections[i%len(sections)]
		price, _ := decimal.NewFromString(sample.price)

		item := &entity.Item{
			ID:          uuid.New().String(),
			Name:        fmt.Sprintf("%s #%d", sample.name, i+1),
			Category:    sample.category,
			Quantity:    10 + (i*7)%200,
			MinQuantity: 5 + (i*3)%40,
			UnitPrice:   price,
			Unit:        sample.unit,
			Supplier:    "Seed",
			OwnerID:     "seed",
			Section:     sec,
			UpdatedAt:   time.Now(),
		}
		if err := repo.Create(ctx, item); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Item %d (%s): %v\n", i+1, sec, err)
			continue
		}
		ok++
	}

	fmt.Printf("Sembrados %d items (%d fallidos) en %s\n", ok, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

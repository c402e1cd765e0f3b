package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// El estado se deriva siempre de quantity vs minQuantity, nunca se almacena.
func TestItemStatus_Derivacion(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		min      int
		want     string
	}{
		{"sobre el umbral", 25, 20, entity.StatusInStock},
		{"justo sobre el umbral", 21, 20, entity.StatusInStock},
		{"en el umbral", 20, 20, entity.StatusLowStock},
		{"bajo el umbral", 10, 20, entity.StatusLowStock},
		{"cero", 0, 20, entity.StatusOutOfStock},
		{"negativo", -3, 20, entity.StatusOutOfStock},
		{"cero con umbral cero", 0, 0, entity.StatusOutOfStock},
		{"positivo con umbral cero", 1, 0, entity.StatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := entity.Item{Quantity: tc.quantity, MinQuantity: tc.min}
			assert.Equal(t, tc.want, item.Status())
		})
	}
}

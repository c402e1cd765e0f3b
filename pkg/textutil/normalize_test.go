package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jabón", "jabon"},
		{"Acetaminofén 500mg", "acetaminofen 500mg"},
		{"CAFÉ", "cafe"},
		{"niño", "nino"},
		{"sin acentos", "sin acentos"},
		{"", ""},
		{"Ñandú", "nandu"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.Fold(tc.in), "Fold(%q)", tc.in)
	}
}

// Fold es idempotente: aplicarlo sobre texto ya normalizado no cambia nada.
func TestFold_Idempotente(t *testing.T) {
	once := textutil.Fold("Película Vídeo Órgano")
	assert.Equal(t, once, textutil.Fold(once))
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores de operaciones del servicio de datos.
// Se inyecta desde el composition root; en tests se usa New con un registry propio.
type Metrics struct {
	Operations *prometheus.CounterVec
	Errors     *prometheus.CounterVec
}

// New registra los contadores en el registry indicado.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almacen_operations_total",
			Help: "Total de operaciones del servicio de datos por tipo.",
		}, []string{"op"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "almacen_operation_errors_total",
			Help: "Total de operaciones fallidas por tipo.",
		}, []string{"op"}),
	}
}

// Observe incrementa el contador de la operación y, si err no es nil, el de errores.
func (m *Metrics) Observe(op string, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op).Inc()
	if err != nil {
		m.Errors.WithLabelValues(op).Inc()
	}
}

package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Scheduler refresca el registry de recursos en segundo plano para que las
// tiendas creadas por otras instancias aparezcan sin esperar a un fallo de
// resolución.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New programa el refresh del registry con la expresión cron dada
// (por ejemplo "@every 5m"). No arranca hasta llamar Start.
func New(registry repository.ResourceRegistry, spec string, log *logger.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := registry.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("refresh periódico del registry falló")
			return
		}
		log.Debug().Msg("registry refrescado")
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start arranca los jobs en sus propias goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el scheduler y espera a que terminen los jobs en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

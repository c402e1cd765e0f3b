package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ActivityLogger registra el rastro de auditoría fire-and-forget: un fallo al
// escribir la actividad se loguea y jamás aborta la operación de negocio que
// la originó.
type ActivityLogger struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewActivityLogger construye el caso de uso.
func NewActivityLogger(repo repository.ActivityRepository, log *logger.Logger) *ActivityLogger {
	return &ActivityLogger{repo: repo, log: log}
}

// Log agrega un evento de auditoría. Nunca retorna error.
func (uc *ActivityLogger) Log(ctx context.Context, user, action, target, activityType, section string) {
	activity := &entity.Activity{
		ID:        uuid.New().String(),
		User:      user,
		Action:    action,
		Target:    target,
		Timestamp: time.Now().UTC(),
		Type:      activityType,
		Section:   section,
	}
	if err := uc.repo.Append(ctx, activity); err != nil {
		uc.log.Warn().Err(err).
			Str("action", action).
			Str("section", section).
			Msg("no se pudo registrar la actividad de auditoría")
	}
}

// List devuelve las actividades de una sección, más recientes primero.
func (uc *ActivityLogger) List(ctx context.Context, section string, limit int) (*dto.ActivityListResponse, error) {
	list, err := uc.repo.ListBySection(ctx, section, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ActivityResponse{
			ID:        a.ID,
			User:      a.User,
			Action:    a.Action,
			Target:    a.Target,
			Timestamp: a.Timestamp,
			Type:      a.Type,
			Section:   a.Section,
		})
	}
	return &dto.ActivityListResponse{Items: items}, nil
}

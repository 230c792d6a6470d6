package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/normalization"
	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type NotificacionService interface {
	Create(ctx context.Context, input NotificacionCreate) (*types.Notificacion, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Notificacion, error)
	List(ctx context.Context) ([]*types.Notificacion, error)
	ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Notificacion, error)
	Update(ctx context.Context, id uuid.UUID, input NotificacionUpdate) (*types.Notificacion, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type NotificacionCreate struct {
	Mensaje      string    `json:"mensaje"`
	Leida        bool      `json:"leida"`
	ExpedienteID uuid.UUID `json:"expedienteId"`
	TareaID      uuid.UUID `json:"tareaId"`
}

type NotificacionUpdate struct {
	Mensaje *string `json:"mensaje"`
	Leida   *bool   `json:"leida"`
}

type notificacionService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificacionRepo repos.NotificacionRepo
	expedienteRepo   repos.ExpedienteRepo
	tareaRepo        repos.TareaRepo
}

func NewNotificacionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	notificacionRepo repos.NotificacionRepo,
	expedienteRepo repos.ExpedienteRepo,
	tareaRepo repos.TareaRepo,
) NotificacionService {
	serviceLog := baseLog.With("service", "NotificacionService")
	return &notificacionService{
		db:               db,
		log:              serviceLog,
		notificacionRepo: notificacionRepo,
		expedienteRepo:   expedienteRepo,
		tareaRepo:        tareaRepo,
	}
}

// Create needs both parents to exist; the checks and the insert share one
// transaction so a bad reference never leaves a partial write. The response
// joins expediente and tarea.
func (ns *notificacionService) Create(ctx context.Context, input NotificacionCreate) (*types.Notificacion, error) {
	input.Mensaje = normalization.TrimInputString(input.Mensaje)
	if input.Mensaje == "" {
		return nil, apierr.BadRequest("missing_mensaje", errors.New("a mensaje is required"))
	}
	if input.ExpedienteID == uuid.Nil {
		return nil, apierr.BadRequest("missing_expediente_id", errors.New("an expedienteId is required"))
	}
	if input.TareaID == uuid.Nil {
		return nil, apierr.BadRequest("missing_tarea_id", errors.New("a tareaId is required"))
	}

	var created *types.Notificacion
	err := ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expedienteExists, eErr := ns.expedienteRepo.Exists(ctx, tx, input.ExpedienteID)
		if eErr != nil {
			return fmt.Errorf("Failed to check expediente: %w", eErr)
		}
		if !expedienteExists {
			return apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", input.ExpedienteID))
		}
		tareaExists, tErr := ns.tareaRepo.Exists(ctx, tx, input.TareaID)
		if tErr != nil {
			return fmt.Errorf("Failed to check tarea: %w", tErr)
		}
		if !tareaExists {
			return apierr.NotFound("tarea_not_found", fmt.Errorf("tarea %s not found", input.TareaID))
		}
		notificacion := &types.Notificacion{
			Mensaje:      input.Mensaje,
			Leida:        input.Leida,
			ExpedienteID: input.ExpedienteID,
			TareaID:      input.TareaID,
		}
		row, cErr := ns.notificacionRepo.Create(ctx, tx, notificacion)
		if cErr != nil {
			return fmt.Errorf("Failed to create notificacion: %w", cErr)
		}
		joined, jErr := ns.notificacionRepo.GetByIDWithRelations(ctx, tx, row.ID)
		if jErr != nil {
			return fmt.Errorf("Failed to reload notificacion with relations: %w", jErr)
		}
		created = joined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (ns *notificacionService) Get(ctx context.Context, id uuid.UUID) (*types.Notificacion, error) {
	notificacion, err := ns.notificacionRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("notificacion_not_found", err)
		}
		return nil, err
	}
	return notificacion, nil
}

func (ns *notificacionService) List(ctx context.Context) ([]*types.Notificacion, error) {
	return ns.notificacionRepo.List(ctx, nil)
}

func (ns *notificacionService) ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Notificacion, error) {
	return ns.notificacionRepo.ListByExpediente(ctx, nil, expedienteID)
}

func (ns *notificacionService) Update(ctx context.Context, id uuid.UUID, input NotificacionUpdate) (*types.Notificacion, error) {
	updates := map[string]interface{}{}
	if input.Mensaje != nil {
		mensaje := normalization.TrimInputString(*input.Mensaje)
		if mensaje == "" {
			return nil, apierr.BadRequest("missing_mensaje", errors.New("mensaje cannot be empty"))
		}
		updates["mensaje"] = mensaje
	}
	if input.Leida != nil {
		updates["leida"] = *input.Leida
	}

	var updated *types.Notificacion
	err := ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			affected, uErr := ns.notificacionRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("notificacion_not_found", fmt.Errorf("notificacion %s not found", id))
			}
		}
		row, gErr := ns.notificacionRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("notificacion_not_found", gErr)
			}
			return gErr
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ns *notificacionService) Remove(ctx context.Context, id uuid.UUID) error {
	affected, err := ns.notificacionRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete notificacion: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("notificacion_not_found", fmt.Errorf("notificacion %s not found", id))
	}
	return nil
}

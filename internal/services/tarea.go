package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/normalization"
	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type TareaService interface {
	Create(ctx context.Context, input TareaCreate) (*types.Tarea, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Tarea, error)
	List(ctx context.Context) ([]*types.Tarea, error)
	ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Tarea, error)
	Update(ctx context.Context, id uuid.UUID, input TareaUpdate) (*types.Tarea, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type TareaCreate struct {
	Titulo       string     `json:"titulo"`
	Descripcion  string     `json:"descripcion"`
	FechaLimite  *time.Time `json:"fecha_limite"`
	Completada   bool       `json:"completada"`
	ExpedienteID uuid.UUID  `json:"expedienteId"`
}

type TareaUpdate struct {
	Titulo      *string    `json:"titulo"`
	Descripcion *string    `json:"descripcion"`
	FechaLimite *time.Time `json:"fecha_limite"`
	Completada  *bool      `json:"completada"`
}

type tareaService struct {
	db             *gorm.DB
	log            *logger.Logger
	tareaRepo      repos.TareaRepo
	expedienteRepo repos.ExpedienteRepo
}

func NewTareaService(db *gorm.DB, baseLog *logger.Logger, tareaRepo repos.TareaRepo, expedienteRepo repos.ExpedienteRepo) TareaService {
	serviceLog := baseLog.With("service", "TareaService")
	return &tareaService{db: db, log: serviceLog, tareaRepo: tareaRepo, expedienteRepo: expedienteRepo}
}

// Create checks the parent case file inside the same transaction as the
// insert and answers with the Expediente joined in.
func (ts *tareaService) Create(ctx context.Context, input TareaCreate) (*types.Tarea, error) {
	input.Titulo = normalization.TrimInputString(input.Titulo)
	if input.Titulo == "" {
		return nil, apierr.BadRequest("missing_titulo", errors.New("a titulo is required"))
	}
	if input.ExpedienteID == uuid.Nil {
		return nil, apierr.BadRequest("missing_expediente_id", errors.New("an expedienteId is required"))
	}

	var created *types.Tarea
	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, eErr := ts.expedienteRepo.Exists(ctx, tx, input.ExpedienteID)
		if eErr != nil {
			return fmt.Errorf("Failed to check expediente: %w", eErr)
		}
		if !exists {
			return apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", input.ExpedienteID))
		}
		tarea := &types.Tarea{
			Titulo:       input.Titulo,
			Descripcion:  input.Descripcion,
			FechaLimite:  input.FechaLimite,
			Completada:   input.Completada,
			ExpedienteID: input.ExpedienteID,
		}
		row, cErr := ts.tareaRepo.Create(ctx, tx, tarea)
		if cErr != nil {
			return fmt.Errorf("Failed to create tarea: %w", cErr)
		}
		joined, jErr := ts.tareaRepo.GetByIDWithExpediente(ctx, tx, row.ID)
		if jErr != nil {
			return fmt.Errorf("Failed to reload tarea with expediente: %w", jErr)
		}
		created = joined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (ts *tareaService) Get(ctx context.Context, id uuid.UUID) (*types.Tarea, error) {
	tarea, err := ts.tareaRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("tarea_not_found", err)
		}
		return nil, err
	}
	return tarea, nil
}

func (ts *tareaService) List(ctx context.Context) ([]*types.Tarea, error) {
	return ts.tareaRepo.List(ctx, nil)
}

func (ts *tareaService) ListByExpediente(ctx context.Context, expedienteID uuid.UUID) ([]*types.Tarea, error) {
	return ts.tareaRepo.ListByExpediente(ctx, nil, expedienteID)
}

func (ts *tareaService) Update(ctx context.Context, id uuid.UUID, input TareaUpdate) (*types.Tarea, error) {
	updates := map[string]interface{}{}
	if input.Titulo != nil {
		titulo := normalization.TrimInputString(*input.Titulo)
		if titulo == "" {
			return nil, apierr.BadRequest("missing_titulo", errors.New("titulo cannot be empty"))
		}
		updates["titulo"] = titulo
	}
	if input.Descripcion != nil {
		updates["descripcion"] = *input.Descripcion
	}
	if input.FechaLimite != nil {
		updates["fecha_limite"] = *input.FechaLimite
	}
	if input.Completada != nil {
		updates["completada"] = *input.Completada
	}

	var updated *types.Tarea
	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			affected, uErr := ts.tareaRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("tarea_not_found", fmt.Errorf("tarea %s not found", id))
			}
		}
		row, gErr := ts.tareaRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("tarea_not_found", gErr)
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

func (ts *tareaService) Remove(ctx context.Context, id uuid.UUID) error {
	affected, err := ts.tareaRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete tarea: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("tarea_not_found", fmt.Errorf("tarea %s not found", id))
	}
	return nil
}

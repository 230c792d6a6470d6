package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type TareaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tarea *types.Tarea) (*types.Tarea, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tarea, error)
	GetByIDWithExpediente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tarea, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Tarea, error)
	ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Tarea, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type tareaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTareaRepo(db *gorm.DB, baseLog *logger.Logger) TareaRepo {
	repoLog := baseLog.With("repo", "TareaRepo")
	return &tareaRepo{db: db, log: repoLog}
}

func (tr *tareaRepo) Create(ctx context.Context, tx *gorm.DB, tarea *types.Tarea) (*types.Tarea, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if tarea.ID == uuid.Nil {
		tarea.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(tarea).Error; err != nil {
		return nil, err
	}
	return tarea, nil
}

func (tr *tareaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tarea, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Tarea
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *tareaRepo) GetByIDWithExpediente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tarea, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Tarea
	if err := transaction.WithContext(ctx).
		Preload("Expediente").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *tareaRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Tarea, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tarea
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tareaRepo) ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Tarea, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Tarea
	if err := transaction.WithContext(ctx).
		Where("expediente_id = ?", expedienteID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tareaRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Tarea{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (tr *tareaRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Tarea{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (tr *tareaRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Tarea{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

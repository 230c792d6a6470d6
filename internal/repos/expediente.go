package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ExpedienteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, expediente *types.Expediente) (*types.Expediente, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Expediente, error)
	GetByIDWithCliente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Expediente, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Expediente, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type expedienteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpedienteRepo(db *gorm.DB, baseLog *logger.Logger) ExpedienteRepo {
	repoLog := baseLog.With("repo", "ExpedienteRepo")
	return &expedienteRepo{db: db, log: repoLog}
}

func (er *expedienteRepo) Create(ctx context.Context, tx *gorm.DB, expediente *types.Expediente) (*types.Expediente, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if expediente.ID == uuid.Nil {
		expediente.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(expediente).Error; err != nil {
		return nil, err
	}
	return expediente, nil
}

func (er *expedienteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Expediente, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Expediente
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByIDWithCliente mirrors the create response shape: the record joined
// with its Cliente, nothing else.
func (er *expedienteRepo) GetByIDWithCliente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Expediente, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Expediente
	if err := transaction.WithContext(ctx).
		Preload("Cliente").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *expedienteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Expediente, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Expediente
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *expedienteRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Expediente{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (er *expedienteRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Expediente{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (er *expedienteRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Expediente{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

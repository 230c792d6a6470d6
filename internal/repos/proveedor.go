package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ProveedorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, proveedor *types.Proveedor) (*types.Proveedor, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Proveedor, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Proveedor, error)
	FindByNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Proveedor, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type proveedorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProveedorRepo(db *gorm.DB, baseLog *logger.Logger) ProveedorRepo {
	repoLog := baseLog.With("repo", "ProveedorRepo")
	return &proveedorRepo{db: db, log: repoLog}
}

func (pr *proveedorRepo) Create(ctx context.Context, tx *gorm.DB, proveedor *types.Proveedor) (*types.Proveedor, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if proveedor.ID == uuid.Nil {
		proveedor.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(proveedor).Error; err != nil {
		return nil, err
	}
	return proveedor, nil
}

func (pr *proveedorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Proveedor, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Proveedor
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *proveedorRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Proveedor, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Proveedor
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *proveedorRepo) FindByNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Proveedor, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Proveedor
	if err := transaction.WithContext(ctx).
		Where("nombre = ?", nombre).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *proveedorRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Proveedor{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (pr *proveedorRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Proveedor{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

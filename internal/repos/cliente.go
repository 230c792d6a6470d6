package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ClienteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) (*types.Cliente, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Cliente, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Cliente, error)
	FindByNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Cliente, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type clienteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClienteRepo(db *gorm.DB, baseLog *logger.Logger) ClienteRepo {
	repoLog := baseLog.With("repo", "ClienteRepo")
	return &clienteRepo{db: db, log: repoLog}
}

func (cr *clienteRepo) Create(ctx context.Context, tx *gorm.DB, cliente *types.Cliente) (*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if cliente.ID == uuid.Nil {
		cliente.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(cliente).Error; err != nil {
		return nil, err
	}
	return cliente, nil
}

func (cr *clienteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Cliente
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *clienteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Cliente
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindByNombre returns the first match; nombre is not unique.
func (cr *clienteRepo) FindByNombre(ctx context.Context, tx *gorm.DB, nombre string) (*types.Cliente, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Cliente
	if err := transaction.WithContext(ctx).
		Where("nombre = ?", nombre).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *clienteRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Cliente{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (cr *clienteRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Cliente{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (cr *clienteRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Cliente{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

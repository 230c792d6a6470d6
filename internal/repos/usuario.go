package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type UsuarioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, usuario *types.Usuario) (*types.Usuario, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Usuario, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Usuario, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Usuario, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type usuarioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUsuarioRepo(db *gorm.DB, baseLog *logger.Logger) UsuarioRepo {
	repoLog := baseLog.With("repo", "UsuarioRepo")
	return &usuarioRepo{db: db, log: repoLog}
}

func (ur *usuarioRepo) Create(ctx context.Context, tx *gorm.DB, usuario *types.Usuario) (*types.Usuario, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if usuario.ID == uuid.Nil {
		usuario.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(usuario).Error; err != nil {
		return nil, err
	}
	return usuario, nil
}

func (ur *usuarioRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Usuario, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.Usuario
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *usuarioRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Usuario, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.Usuario
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *usuarioRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Usuario, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.Usuario
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *usuarioRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Usuario{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ur *usuarioRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Usuario{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ur *usuarioRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Usuario{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *usuarioRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Usuario{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

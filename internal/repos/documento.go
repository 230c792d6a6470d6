package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

// DocumentoRepo has no Update or Delete: documents are immutable once
// recorded.
type DocumentoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, documento *types.Documento) (*types.Documento, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Documento, error)
	GetByIDWithExpediente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Documento, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Documento, error)
	ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Documento, error)
}

type documentoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentoRepo(db *gorm.DB, baseLog *logger.Logger) DocumentoRepo {
	repoLog := baseLog.With("repo", "DocumentoRepo")
	return &documentoRepo{db: db, log: repoLog}
}

func (dr *documentoRepo) Create(ctx context.Context, tx *gorm.DB, documento *types.Documento) (*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if documento.ID == uuid.Nil {
		documento.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(documento).Error; err != nil {
		return nil, err
	}
	return documento, nil
}

func (dr *documentoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Documento
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *documentoRepo) GetByIDWithExpediente(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Documento
	if err := transaction.WithContext(ctx).
		Preload("Expediente").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *documentoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Documento
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *documentoRepo) ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Documento, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Documento
	if err := transaction.WithContext(ctx).
		Where("expediente_id = ?", expedienteID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

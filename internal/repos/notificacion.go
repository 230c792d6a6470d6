package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type NotificacionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notificacion *types.Notificacion) (*types.Notificacion, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notificacion, error)
	GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notificacion, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Notificacion, error)
	ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Notificacion, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type notificacionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificacionRepo(db *gorm.DB, baseLog *logger.Logger) NotificacionRepo {
	repoLog := baseLog.With("repo", "NotificacionRepo")
	return &notificacionRepo{db: db, log: repoLog}
}

func (nr *notificacionRepo) Create(ctx context.Context, tx *gorm.DB, notificacion *types.Notificacion) (*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if notificacion.ID == uuid.Nil {
		notificacion.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(notificacion).Error; err != nil {
		return nil, err
	}
	return notificacion, nil
}

func (nr *notificacionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var result types.Notificacion
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByIDWithRelations joins both parents, matching the create response
// shape (expediente + tarea).
func (nr *notificacionRepo) GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var result types.Notificacion
	if err := transaction.WithContext(ctx).
		Preload("Expediente").
		Preload("Tarea").
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (nr *notificacionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.Notificacion
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificacionRepo) ListByExpediente(ctx context.Context, tx *gorm.DB, expedienteID uuid.UUID) ([]*types.Notificacion, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.Notificacion
	if err := transaction.WithContext(ctx).
		Where("expediente_id = ?", expedienteID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificacionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Notificacion{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (nr *notificacionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Notificacion{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

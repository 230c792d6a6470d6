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

type ProveedorService interface {
	Create(ctx context.Context, proveedor *types.Proveedor) (*types.Proveedor, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Proveedor, error)
	List(ctx context.Context) ([]*types.Proveedor, error)
	FindByNombre(ctx context.Context, nombre string) (*types.Proveedor, error)
	Update(ctx context.Context, id uuid.UUID, input ProveedorUpdate) (*types.Proveedor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProveedorUpdate struct {
	Nombre   *string `json:"nombre"`
	Contacto *string `json:"contacto"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
	Notas    *string `json:"notas"`
	Logo     *string `json:"logo"`
}

func (u ProveedorUpdate) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Nombre != nil {
		updates["nombre"] = normalization.TrimInputString(*u.Nombre)
	}
	if u.Contacto != nil {
		updates["contacto"] = *u.Contacto
	}
	if u.Email != nil {
		updates["email"] = normalization.ParseInputString(*u.Email)
	}
	if u.Telefono != nil {
		updates["telefono"] = *u.Telefono
	}
	if u.Notas != nil {
		updates["notas"] = *u.Notas
	}
	if u.Logo != nil {
		updates["logo"] = *u.Logo
	}
	return updates
}

type proveedorService struct {
	db            *gorm.DB
	log           *logger.Logger
	proveedorRepo repos.ProveedorRepo
}

func NewProveedorService(db *gorm.DB, baseLog *logger.Logger, proveedorRepo repos.ProveedorRepo) ProveedorService {
	serviceLog := baseLog.With("service", "ProveedorService")
	return &proveedorService{db: db, log: serviceLog, proveedorRepo: proveedorRepo}
}

func (ps *proveedorService) Create(ctx context.Context, proveedor *types.Proveedor) (*types.Proveedor, error) {
	proveedor.Nombre = normalization.TrimInputString(proveedor.Nombre)
	if proveedor.Nombre == "" {
		return nil, apierr.BadRequest("missing_nombre", errors.New("a nombre is required"))
	}
	if proveedor.Email != "" {
		proveedor.Email = normalization.ParseInputString(proveedor.Email)
	}
	created, err := ps.proveedorRepo.Create(ctx, nil, proveedor)
	if err != nil {
		ps.log.Error("Failed to create proveedor", "error", err)
		return nil, fmt.Errorf("Failed to create proveedor: %w", err)
	}
	return created, nil
}

func (ps *proveedorService) Get(ctx context.Context, id uuid.UUID) (*types.Proveedor, error) {
	proveedor, err := ps.proveedorRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("proveedor_not_found", err)
		}
		return nil, err
	}
	return proveedor, nil
}

func (ps *proveedorService) List(ctx context.Context) ([]*types.Proveedor, error) {
	return ps.proveedorRepo.List(ctx, nil)
}

func (ps *proveedorService) FindByNombre(ctx context.Context, nombre string) (*types.Proveedor, error) {
	proveedor, err := ps.proveedorRepo.FindByNombre(ctx, nil, normalization.TrimInputString(nombre))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("proveedor_not_found", err)
		}
		return nil, err
	}
	return proveedor, nil
}

func (ps *proveedorService) Update(ctx context.Context, id uuid.UUID, input ProveedorUpdate) (*types.Proveedor, error) {
	updates := input.changes()
	var updated *types.Proveedor
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			affected, uErr := ps.proveedorRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("proveedor_not_found", fmt.Errorf("proveedor %s not found", id))
			}
		}
		row, gErr := ps.proveedorRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("proveedor_not_found", gErr)
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

func (ps *proveedorService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := ps.proveedorRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete proveedor: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("proveedor_not_found", fmt.Errorf("proveedor %s not found", id))
	}
	return nil
}

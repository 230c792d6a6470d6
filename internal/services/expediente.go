package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type ExpedienteService interface {
	Create(ctx context.Context, input ExpedienteCreate) (*types.Expediente, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Expediente, error)
	List(ctx context.Context) ([]*types.Expediente, error)
	Update(ctx context.Context, id uuid.UUID, input ExpedienteUpdate) (*types.Expediente, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type ExpedienteCreate struct {
	Estado      *types.EstadoExpediente `json:"estado"`
	Descripcion string                  `json:"descripcion"`
	Datos       datatypes.JSON          `json:"datos"`
	ClienteID   uuid.UUID               `json:"clienteId"`
	BrokerID    uuid.UUID               `json:"brokerId"`
}

type ExpedienteUpdate struct {
	Estado      *types.EstadoExpediente `json:"estado"`
	Descripcion *string                 `json:"descripcion"`
	Datos       datatypes.JSON          `json:"datos"`
	ClienteID   *uuid.UUID              `json:"clienteId"`
	BrokerID    *uuid.UUID              `json:"brokerId"`
}

type expedienteService struct {
	db             *gorm.DB
	log            *logger.Logger
	expedienteRepo repos.ExpedienteRepo
	clienteRepo    repos.ClienteRepo
	usuarioRepo    repos.UsuarioRepo
}

func NewExpedienteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	expedienteRepo repos.ExpedienteRepo,
	clienteRepo repos.ClienteRepo,
	usuarioRepo repos.UsuarioRepo,
) ExpedienteService {
	serviceLog := baseLog.With("service", "ExpedienteService")
	return &expedienteService{
		db:             db,
		log:            serviceLog,
		expedienteRepo: expedienteRepo,
		clienteRepo:    clienteRepo,
		usuarioRepo:    usuarioRepo,
	}
}

// Create inserts the case file and links it to its Cliente and broker in one
// transaction. The references are checked explicitly before the insert so a
// bad id surfaces as a clean not-found instead of a raw constraint error,
// and a failed link leaves no partial record behind. The response carries
// the Cliente joined in; later reads do not (the list/get surface is
// intentionally lean).
func (es *expedienteService) Create(ctx context.Context, input ExpedienteCreate) (*types.Expediente, error) {
	if input.ClienteID == uuid.Nil {
		return nil, apierr.BadRequest("missing_cliente_id", errors.New("a clienteId is required"))
	}
	if input.BrokerID == uuid.Nil {
		return nil, apierr.BadRequest("missing_broker_id", errors.New("a brokerId is required"))
	}
	estado := types.EstadoAbierto
	if input.Estado != nil {
		if !input.Estado.Valid() {
			return nil, apierr.BadRequest("invalid_estado", fmt.Errorf("unknown estado %q", *input.Estado))
		}
		estado = *input.Estado
	}

	var created *types.Expediente
	err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clienteExists, cErr := es.clienteRepo.Exists(ctx, tx, input.ClienteID)
		if cErr != nil {
			return fmt.Errorf("Failed to check cliente: %w", cErr)
		}
		if !clienteExists {
			return apierr.NotFound("cliente_not_found", fmt.Errorf("cliente %s not found", input.ClienteID))
		}
		brokerExists, bErr := es.usuarioRepo.Exists(ctx, tx, input.BrokerID)
		if bErr != nil {
			return fmt.Errorf("Failed to check broker: %w", bErr)
		}
		if !brokerExists {
			return apierr.NotFound("broker_not_found", fmt.Errorf("broker %s not found", input.BrokerID))
		}

		expediente := &types.Expediente{
			Estado:      estado,
			Descripcion: input.Descripcion,
			Datos:       input.Datos,
			ClienteID:   input.ClienteID,
			BrokerID:    input.BrokerID,
		}
		row, crErr := es.expedienteRepo.Create(ctx, tx, expediente)
		if crErr != nil {
			return fmt.Errorf("Failed to create expediente: %w", crErr)
		}
		joined, jErr := es.expedienteRepo.GetByIDWithCliente(ctx, tx, row.ID)
		if jErr != nil {
			return fmt.Errorf("Failed to reload expediente with cliente: %w", jErr)
		}
		created = joined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (es *expedienteService) Get(ctx context.Context, id uuid.UUID) (*types.Expediente, error) {
	expediente, err := es.expedienteRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("expediente_not_found", err)
		}
		return nil, err
	}
	return expediente, nil
}

// List returns every case file with no relation expansion.
func (es *expedienteService) List(ctx context.Context) ([]*types.Expediente, error) {
	return es.expedienteRepo.List(ctx, nil)
}

func (es *expedienteService) Update(ctx context.Context, id uuid.UUID, input ExpedienteUpdate) (*types.Expediente, error) {
	updates := map[string]interface{}{}
	if input.Estado != nil {
		// Any known state may replace any other; there is no transition
		// ordering on estado.
		if !input.Estado.Valid() {
			return nil, apierr.BadRequest("invalid_estado", fmt.Errorf("unknown estado %q", *input.Estado))
		}
		updates["estado"] = *input.Estado
	}
	if input.Descripcion != nil {
		updates["descripcion"] = *input.Descripcion
	}
	if input.Datos != nil {
		updates["datos"] = input.Datos
	}

	var updated *types.Expediente
	err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.ClienteID != nil {
			clienteExists, cErr := es.clienteRepo.Exists(ctx, tx, *input.ClienteID)
			if cErr != nil {
				return fmt.Errorf("Failed to check cliente: %w", cErr)
			}
			if !clienteExists {
				return apierr.NotFound("cliente_not_found", fmt.Errorf("cliente %s not found", *input.ClienteID))
			}
			updates["cliente_id"] = *input.ClienteID
		}
		if input.BrokerID != nil {
			brokerExists, bErr := es.usuarioRepo.Exists(ctx, tx, *input.BrokerID)
			if bErr != nil {
				return fmt.Errorf("Failed to check broker: %w", bErr)
			}
			if !brokerExists {
				return apierr.NotFound("broker_not_found", fmt.Errorf("broker %s not found", *input.BrokerID))
			}
			updates["broker_id"] = *input.BrokerID
		}
		if len(updates) > 0 {
			affected, uErr := es.expedienteRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", id))
			}
		}
		row, gErr := es.expedienteRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("expediente_not_found", gErr)
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

// Remove exists at the service layer but is not wired to a route; the HTTP
// surface has no expediente delete.
func (es *expedienteService) Remove(ctx context.Context, id uuid.UUID) error {
	affected, err := es.expedienteRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete expediente: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("expediente_not_found", fmt.Errorf("expediente %s not found", id))
	}
	return nil
}

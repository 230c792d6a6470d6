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

type ClienteService interface {
	Create(ctx context.Context, cliente *types.Cliente) (*types.Cliente, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Cliente, error)
	List(ctx context.Context) ([]*types.Cliente, error)
	FindByNombre(ctx context.Context, nombre string) (*types.Cliente, error)
	Update(ctx context.Context, id uuid.UUID, input ClienteUpdate) (*types.Cliente, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClienteUpdate mirrors the model field for field with pointers so a PATCH
// only touches what the caller sent.
type ClienteUpdate struct {
	Nombre          *string            `json:"nombre"`
	Apellidos       *string            `json:"apellidos"`
	FechaNacimiento *time.Time         `json:"fechaNacimiento"`
	Nacionalidad    *string            `json:"nacionalidad"`
	EstadoCivil     *types.EstadoCivil `json:"estadoCivil"`
	NumHijos        *int               `json:"numHijos"`
	DNI             *string            `json:"dni"`
	Telefono        *string            `json:"telefono"`
	Email           *string            `json:"email"`
	DireccionActual *string            `json:"direccionActual"`
	TiempoViviendo  *int               `json:"tiempoViviendo"`

	TipoEmpleo      *string                `json:"tipoEmpleo"`
	CategoriaEmpleo *types.CategoriaEmpleo `json:"categoriaEmpleo"`

	IngresosNetosMensuales   *float64 `json:"ingresosNetosMensuales"`
	AhorrosDisponibles       *float64 `json:"ahorrosDisponibles"`
	OtrosIngresos            *float64 `json:"otrosIngresos"`
	DeudaPrestamosPersonales *float64 `json:"deudaPrestamosPersonales"`
	DeudaCoche               *float64 `json:"deudaCoche"`
	DeudaTarjetasCredito     *float64 `json:"deudaTarjetasCredito"`
	DeudaOtrasHipotecas      *float64 `json:"deudaOtrasHipotecas"`
	CuotasMensualesDeudas    *float64 `json:"cuotasMensualesDeudas"`

	Notas *string `json:"notas"`
}

func (u ClienteUpdate) changes() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if u.Nombre != nil {
		updates["nombre"] = normalization.TrimInputString(*u.Nombre)
	}
	if u.Apellidos != nil {
		updates["apellidos"] = normalization.TrimInputString(*u.Apellidos)
	}
	if u.FechaNacimiento != nil {
		updates["fecha_nacimiento"] = *u.FechaNacimiento
	}
	if u.Nacionalidad != nil {
		updates["nacionalidad"] = *u.Nacionalidad
	}
	if u.EstadoCivil != nil {
		if !u.EstadoCivil.Valid() {
			return nil, apierr.BadRequest("invalid_estado_civil", fmt.Errorf("unknown estado civil %q", *u.EstadoCivil))
		}
		updates["estado_civil"] = *u.EstadoCivil
	}
	if u.NumHijos != nil {
		updates["num_hijos"] = *u.NumHijos
	}
	if u.DNI != nil {
		updates["dni"] = *u.DNI
	}
	if u.Telefono != nil {
		updates["telefono"] = *u.Telefono
	}
	if u.Email != nil {
		updates["email"] = normalization.ParseInputString(*u.Email)
	}
	if u.DireccionActual != nil {
		updates["direccion_actual"] = *u.DireccionActual
	}
	if u.TiempoViviendo != nil {
		updates["tiempo_viviendo"] = *u.TiempoViviendo
	}
	if u.TipoEmpleo != nil {
		updates["tipo_empleo"] = *u.TipoEmpleo
	}
	if u.CategoriaEmpleo != nil {
		if !u.CategoriaEmpleo.Valid() {
			return nil, apierr.BadRequest("invalid_categoria_empleo", fmt.Errorf("unknown categoria empleo %q", *u.CategoriaEmpleo))
		}
		updates["categoria_empleo"] = *u.CategoriaEmpleo
	}
	if u.IngresosNetosMensuales != nil {
		updates["ingresos_netos_mensuales"] = *u.IngresosNetosMensuales
	}
	if u.AhorrosDisponibles != nil {
		updates["ahorros_disponibles"] = *u.AhorrosDisponibles
	}
	if u.OtrosIngresos != nil {
		updates["otros_ingresos"] = *u.OtrosIngresos
	}
	if u.DeudaPrestamosPersonales != nil {
		updates["deuda_prestamos_personales"] = *u.DeudaPrestamosPersonales
	}
	if u.DeudaCoche != nil {
		updates["deuda_coche"] = *u.DeudaCoche
	}
	if u.DeudaTarjetasCredito != nil {
		updates["deuda_tarjetas_credito"] = *u.DeudaTarjetasCredito
	}
	if u.DeudaOtrasHipotecas != nil {
		updates["deuda_otras_hipotecas"] = *u.DeudaOtrasHipotecas
	}
	if u.CuotasMensualesDeudas != nil {
		updates["cuotas_mensuales_deudas"] = *u.CuotasMensualesDeudas
	}
	if u.Notas != nil {
		updates["notas"] = *u.Notas
	}
	return updates, nil
}

type clienteService struct {
	db          *gorm.DB
	log         *logger.Logger
	clienteRepo repos.ClienteRepo
}

func NewClienteService(db *gorm.DB, baseLog *logger.Logger, clienteRepo repos.ClienteRepo) ClienteService {
	serviceLog := baseLog.With("service", "ClienteService")
	return &clienteService{db: db, log: serviceLog, clienteRepo: clienteRepo}
}

func (cs *clienteService) Create(ctx context.Context, cliente *types.Cliente) (*types.Cliente, error) {
	cliente.Nombre = normalization.TrimInputString(cliente.Nombre)
	cliente.Apellidos = normalization.TrimInputString(cliente.Apellidos)
	if cliente.Nombre == "" {
		return nil, apierr.BadRequest("missing_nombre", errors.New("a nombre is required"))
	}
	if cliente.Apellidos == "" {
		return nil, apierr.BadRequest("missing_apellidos", errors.New("apellidos are required"))
	}
	if cliente.EstadoCivil != nil && !cliente.EstadoCivil.Valid() {
		return nil, apierr.BadRequest("invalid_estado_civil", fmt.Errorf("unknown estado civil %q", *cliente.EstadoCivil))
	}
	if cliente.CategoriaEmpleo != nil && !cliente.CategoriaEmpleo.Valid() {
		return nil, apierr.BadRequest("invalid_categoria_empleo", fmt.Errorf("unknown categoria empleo %q", *cliente.CategoriaEmpleo))
	}
	if cliente.Email != "" {
		cliente.Email = normalization.ParseInputString(cliente.Email)
	}
	created, err := cs.clienteRepo.Create(ctx, nil, cliente)
	if err != nil {
		cs.log.Error("Failed to create cliente", "error", err)
		return nil, fmt.Errorf("Failed to create cliente: %w", err)
	}
	return created, nil
}

func (cs *clienteService) Get(ctx context.Context, id uuid.UUID) (*types.Cliente, error) {
	cliente, err := cs.clienteRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("cliente_not_found", err)
		}
		return nil, err
	}
	return cliente, nil
}

func (cs *clienteService) List(ctx context.Context) ([]*types.Cliente, error) {
	return cs.clienteRepo.List(ctx, nil)
}

func (cs *clienteService) FindByNombre(ctx context.Context, nombre string) (*types.Cliente, error) {
	cliente, err := cs.clienteRepo.FindByNombre(ctx, nil, normalization.TrimInputString(nombre))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("cliente_not_found", err)
		}
		return nil, err
	}
	return cliente, nil
}

func (cs *clienteService) Update(ctx context.Context, id uuid.UUID, input ClienteUpdate) (*types.Cliente, error) {
	updates, chErr := input.changes()
	if chErr != nil {
		return nil, chErr
	}
	var updated *types.Cliente
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			affected, uErr := cs.clienteRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("cliente_not_found", fmt.Errorf("cliente %s not found", id))
			}
		}
		row, gErr := cs.clienteRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("cliente_not_found", gErr)
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

func (cs *clienteService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := cs.clienteRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete cliente: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("cliente_not_found", fmt.Errorf("cliente %s not found", id))
	}
	return nil
}

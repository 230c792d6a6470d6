package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/normalization"
	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type UsuarioService interface {
	CreateUser(ctx context.Context, usuario *types.Usuario) (*types.Usuario, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*types.Usuario, error)
	List(ctx context.Context) ([]*types.Usuario, error)
	Update(ctx context.Context, id uuid.UUID, input UsuarioUpdate) (*types.Usuario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UsuarioUpdate carries only the fields the caller supplied; nil fields are
// left untouched.
type UsuarioUpdate struct {
	Nombre    *string    `json:"nombre"`
	Apellidos *string    `json:"apellidos"`
	Email     *string    `json:"email"`
	Password  *string    `json:"password"`
	Rol       *types.Rol `json:"rol"`
}

type usuarioService struct {
	db          *gorm.DB
	log         *logger.Logger
	usuarioRepo repos.UsuarioRepo
}

func NewUsuarioService(db *gorm.DB, baseLog *logger.Logger, usuarioRepo repos.UsuarioRepo) UsuarioService {
	serviceLog := baseLog.With("service", "UsuarioService")
	return &usuarioService{db: db, log: serviceLog, usuarioRepo: usuarioRepo}
}

// CreateUser hashes the supplied password before persisting. The plaintext
// never reaches the database and never comes back out.
func (us *usuarioService) CreateUser(ctx context.Context, usuario *types.Usuario) (*types.Usuario, error) {
	usuario.Email = normalization.ParseInputString(usuario.Email)
	usuario.Nombre = normalization.TrimInputString(usuario.Nombre)
	usuario.Apellidos = normalization.TrimInputString(usuario.Apellidos)

	if usuario.Email == "" {
		return nil, apierr.BadRequest("missing_email", errors.New("an email is required"))
	}
	if usuario.Password == "" {
		return nil, apierr.BadRequest("missing_password", errors.New("a password is required"))
	}
	if usuario.Nombre == "" {
		return nil, apierr.BadRequest("missing_nombre", errors.New("a nombre is required"))
	}
	if usuario.Apellidos == "" {
		return nil, apierr.BadRequest("missing_apellidos", errors.New("apellidos are required"))
	}
	if !usuario.Rol.Valid() {
		return nil, apierr.BadRequest("invalid_rol", fmt.Errorf("unknown rol %q", usuario.Rol))
	}
	emailExists, eErr := us.usuarioRepo.EmailExists(ctx, nil, usuario.Email)
	if eErr != nil {
		return nil, fmt.Errorf("Failed to check user email: %w", eErr)
	}
	if emailExists {
		return nil, apierr.BadRequest("email_in_use", errors.New("email is already in use"))
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(usuario.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, fmt.Errorf("Failed to hash password: %w", hErr)
	}
	usuario.Password = string(hashed)

	created, cErr := us.usuarioRepo.Create(ctx, nil, usuario)
	if cErr != nil {
		return nil, fmt.Errorf("Failed to create usuario: %w", cErr)
	}
	return created, nil
}

func (us *usuarioService) Get(ctx context.Context, id uuid.UUID) (*types.Usuario, error) {
	usuario, err := us.usuarioRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("usuario_not_found", err)
		}
		return nil, err
	}
	return usuario, nil
}

func (us *usuarioService) FindByEmail(ctx context.Context, email string) (*types.Usuario, error) {
	usuario, err := us.usuarioRepo.GetByEmail(ctx, nil, normalization.ParseInputString(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("usuario_not_found", err)
		}
		return nil, err
	}
	return usuario, nil
}

func (us *usuarioService) List(ctx context.Context) ([]*types.Usuario, error) {
	return us.usuarioRepo.List(ctx, nil)
}

func (us *usuarioService) Update(ctx context.Context, id uuid.UUID, input UsuarioUpdate) (*types.Usuario, error) {
	updates := map[string]interface{}{}
	if input.Nombre != nil {
		updates["nombre"] = normalization.TrimInputString(*input.Nombre)
	}
	if input.Apellidos != nil {
		updates["apellidos"] = normalization.TrimInputString(*input.Apellidos)
	}
	if input.Email != nil {
		updates["email"] = normalization.ParseInputString(*input.Email)
	}
	if input.Password != nil {
		hashed, hErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if hErr != nil {
			return nil, fmt.Errorf("Failed to hash password: %w", hErr)
		}
		updates["password"] = string(hashed)
	}
	if input.Rol != nil {
		if !input.Rol.Valid() {
			return nil, apierr.BadRequest("invalid_rol", fmt.Errorf("unknown rol %q", *input.Rol))
		}
		updates["rol"] = *input.Rol
	}

	var updated *types.Usuario
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			affected, uErr := us.usuarioRepo.Update(ctx, tx, id, updates)
			if uErr != nil {
				return uErr
			}
			if affected == 0 {
				return apierr.NotFound("usuario_not_found", fmt.Errorf("usuario %s not found", id))
			}
		}
		row, gErr := us.usuarioRepo.GetByID(ctx, tx, id)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("usuario_not_found", gErr)
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

func (us *usuarioService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := us.usuarioRepo.Delete(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("Failed to delete usuario: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("usuario_not_found", fmt.Errorf("usuario %s not found", id))
	}
	return nil
}

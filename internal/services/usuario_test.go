package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

func newUsuarioService(t *testing.T) UsuarioService {
	t.Helper()
	db := openTestDB(t)
	log := testLogger(t)
	return NewUsuarioService(db, log, repos.NewUsuarioRepo(db, log))
}

func TestCreateUser_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc := newUsuarioService(t)

	created, err := svc.CreateUser(context.Background(), &types.Usuario{
		Nombre:    "Marta",
		Apellidos: "Vega",
		Email:     "  Marta@Hipotecalia.Test ",
		Password:  "s3cret",
		Rol:       types.RolAdmin,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Email != "marta@hipotecalia.test" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Password == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	svc := newUsuarioService(t)

	usuario := types.Usuario{
		Nombre:    "Marta",
		Apellidos: "Vega",
		Email:     "marta@hipotecalia.test",
		Password:  "s3cret",
		Rol:       types.RolBroker,
	}
	if _, err := svc.CreateUser(context.Background(), &usuario); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := types.Usuario{
		Nombre:    "Otra",
		Apellidos: "Persona",
		Email:     "MARTA@hipotecalia.test",
		Password:  "other",
		Rol:       types.RolAssistant,
	}
	_, err := svc.CreateUser(context.Background(), &second)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest || ae.Code != "email_in_use" {
		t.Fatalf("expected 400 email_in_use, got %v", err)
	}
}

func TestCreateUser_RejectsUnknownRol(t *testing.T) {
	svc := newUsuarioService(t)

	_, err := svc.CreateUser(context.Background(), &types.Usuario{
		Nombre:    "Marta",
		Apellidos: "Vega",
		Email:     "marta@hipotecalia.test",
		Password:  "s3cret",
		Rol:       types.Rol("INTERN"),
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != "invalid_rol" {
		t.Fatalf("expected invalid_rol, got %v", err)
	}
}

func TestUsuarioUpdate_RehashesPassword(t *testing.T) {
	svc := newUsuarioService(t)

	created, err := svc.CreateUser(context.Background(), &types.Usuario{
		Nombre:    "Marta",
		Apellidos: "Vega",
		Email:     "marta@hipotecalia.test",
		Password:  "s3cret",
		Rol:       types.RolBroker,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPassword := "n3w-s3cret"
	updated, err := svc.Update(context.Background(), created.ID, UsuarioUpdate{Password: &newPassword})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)); err != nil {
		t.Fatalf("new password not stored hashed: %v", err)
	}
	if updated.Nombre != "Marta" || updated.Rol != types.RolBroker {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

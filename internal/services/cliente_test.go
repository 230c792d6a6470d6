package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

func newClienteService(t *testing.T) ClienteService {
	t.Helper()
	db := openTestDB(t)
	log := testLogger(t)
	return NewClienteService(db, log, repos.NewClienteRepo(db, log))
}

func TestClienteCreate_RoundTripPreservesFields(t *testing.T) {
	svc := newClienteService(t)

	estadoCivil := types.EstadoCivilCasado
	ingresos := 2450.50
	hijos := 2
	created, err := svc.Create(context.Background(), &types.Cliente{
		Nombre:                 "Ana",
		Apellidos:              "Ruiz",
		DNI:                    "12345678Z",
		Email:                  "Ana.Ruiz@Example.com",
		Telefono:               "600123123",
		EstadoCivil:            &estadoCivil,
		NumHijos:               &hijos,
		IngresosNetosMensuales: &ingresos,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if created.Email != "ana.ruiz@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Nombre != "Ana" || got.Apellidos != "Ruiz" || got.DNI != "12345678Z" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.EstadoCivil == nil || *got.EstadoCivil != types.EstadoCivilCasado {
		t.Fatalf("estado civil lost in round trip")
	}
	if got.IngresosNetosMensuales == nil || *got.IngresosNetosMensuales != 2450.50 {
		t.Fatalf("ingresos lost in round trip")
	}
	if got.NumHijos == nil || *got.NumHijos != 2 {
		t.Fatalf("numHijos lost in round trip")
	}
}

func TestClienteCreate_RequiresNombreAndApellidos(t *testing.T) {
	svc := newClienteService(t)

	cases := []struct {
		name    string
		cliente types.Cliente
		code    string
	}{
		{"blank nombre", types.Cliente{Nombre: "  ", Apellidos: "Ruiz"}, "missing_nombre"},
		{"blank apellidos", types.Cliente{Nombre: "Ana", Apellidos: ""}, "missing_apellidos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tc.cliente)
			var ae *apierr.Error
			if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest || ae.Code != tc.code {
				t.Fatalf("expected 400 %s, got %v", tc.code, err)
			}
		})
	}
}

func TestClienteCreate_RejectsUnknownEstadoCivil(t *testing.T) {
	svc := newClienteService(t)

	bad := types.EstadoCivil("EMPAREJADO")
	_, err := svc.Create(context.Background(), &types.Cliente{
		Nombre:      "Ana",
		Apellidos:   "Ruiz",
		EstadoCivil: &bad,
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != "invalid_estado_civil" {
		t.Fatalf("expected invalid_estado_civil, got %v", err)
	}
}

func TestClienteUpdate_PartialLeavesOtherFieldsAlone(t *testing.T) {
	svc := newClienteService(t)

	ingresos := 1800.0
	created, err := svc.Create(context.Background(), &types.Cliente{
		Nombre:                 "Ana",
		Apellidos:              "Ruiz",
		Telefono:               "600123123",
		IngresosNetosMensuales: &ingresos,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	telefono := "699888777"
	updated, err := svc.Update(context.Background(), created.ID, ClienteUpdate{Telefono: &telefono})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Telefono != "699888777" {
		t.Fatalf("expected updated telefono, got %q", updated.Telefono)
	}
	if updated.Nombre != "Ana" || updated.Apellidos != "Ruiz" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.IngresosNetosMensuales == nil || *updated.IngresosNetosMensuales != 1800.0 {
		t.Fatalf("ingresos changed by partial update")
	}
}

func TestClienteUpdate_UnknownIDIsNotFound(t *testing.T) {
	svc := newClienteService(t)

	nombre := "Luis"
	_, err := svc.Update(context.Background(), uuid.New(), ClienteUpdate{Nombre: &nombre})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestClienteDelete_UnknownIDIsNotFound(t *testing.T) {
	svc := newClienteService(t)

	err := svc.Delete(context.Background(), uuid.New())
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestClienteFindByNombre(t *testing.T) {
	svc := newClienteService(t)

	if _, err := svc.Create(context.Background(), &types.Cliente{Nombre: "Ana", Apellidos: "Ruiz"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := svc.FindByNombre(context.Background(), "  Ana ")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Apellidos != "Ruiz" {
		t.Fatalf("unexpected match: %+v", found)
	}

	_, err = svc.FindByNombre(context.Background(), "Nadie")
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown nombre, got %v", err)
	}
}

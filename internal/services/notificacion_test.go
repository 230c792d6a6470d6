package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/apierr"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

func newNotificacionService(t *testing.T) (NotificacionService, repos.NotificacionRepo, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	log := testLogger(t)
	notificacionRepo := repos.NewNotificacionRepo(db, log)
	expedienteRepo := repos.NewExpedienteRepo(db, log)
	tareaRepo := repos.NewTareaRepo(db, log)
	return NewNotificacionService(db, log, notificacionRepo, expedienteRepo, tareaRepo), notificacionRepo, db
}

func seedTarea(t *testing.T, db *gorm.DB, expedienteID uuid.UUID) *types.Tarea {
	t.Helper()
	tareaRepo := repos.NewTareaRepo(db, testLogger(t))
	created, err := tareaRepo.Create(context.Background(), nil, &types.Tarea{
		Titulo:       "revisar escrituras",
		ExpedienteID: expedienteID,
	})
	if err != nil {
		t.Fatalf("failed to seed tarea: %v", err)
	}
	return created
}

func TestNotificacionCreate_UnknownTareaLeavesNoRow(t *testing.T) {
	svc, notificacionRepo, db := newNotificacionService(t)
	expediente := seedExpediente(t, db)

	_, err := svc.Create(context.Background(), NotificacionCreate{
		Mensaje:      "tarea vencida",
		ExpedienteID: expediente.ID,
		TareaID:      uuid.New(),
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound || ae.Code != "tarea_not_found" {
		t.Fatalf("expected 404 tarea_not_found, got %v", err)
	}

	rows, lErr := notificacionRepo.List(context.Background(), nil)
	if lErr != nil {
		t.Fatalf("list failed: %v", lErr)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no notificacion rows, got %d", len(rows))
	}
}

func TestNotificacionCreate_UnknownExpedienteLeavesNoRow(t *testing.T) {
	svc, notificacionRepo, db := newNotificacionService(t)
	expediente := seedExpediente(t, db)
	tarea := seedTarea(t, db, expediente.ID)

	_, err := svc.Create(context.Background(), NotificacionCreate{
		Mensaje:      "tarea vencida",
		ExpedienteID: uuid.New(),
		TareaID:      tarea.ID,
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound || ae.Code != "expediente_not_found" {
		t.Fatalf("expected 404 expediente_not_found, got %v", err)
	}

	rows, lErr := notificacionRepo.List(context.Background(), nil)
	if lErr != nil {
		t.Fatalf("list failed: %v", lErr)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no notificacion rows, got %d", len(rows))
	}
}

func TestNotificacionCreate_JoinsRelations(t *testing.T) {
	svc, _, db := newNotificacionService(t)
	expediente := seedExpediente(t, db)
	tarea := seedTarea(t, db, expediente.ID)

	created, err := svc.Create(context.Background(), NotificacionCreate{
		Mensaje:      "documentación incompleta",
		ExpedienteID: expediente.ID,
		TareaID:      tarea.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Leida {
		t.Fatalf("expected leida=false on create")
	}
	if created.Expediente == nil || created.Expediente.ID != expediente.ID {
		t.Fatalf("expected expediente joined in response")
	}
	if created.Tarea == nil || created.Tarea.ID != tarea.ID {
		t.Fatalf("expected tarea joined in response")
	}
}

func TestNotificacionUpdate_MarkLeidaKeepsMensaje(t *testing.T) {
	svc, _, db := newNotificacionService(t)
	expediente := seedExpediente(t, db)
	tarea := seedTarea(t, db, expediente.ID)

	created, err := svc.Create(context.Background(), NotificacionCreate{
		Mensaje:      "nueva oferta recibida",
		ExpedienteID: expediente.ID,
		TareaID:      tarea.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	leida := true
	updated, err := svc.Update(context.Background(), created.ID, NotificacionUpdate{Leida: &leida})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Leida {
		t.Fatalf("expected leida=true")
	}
	if updated.Mensaje != "nueva oferta recibida" {
		t.Fatalf("mensaje changed by partial update: %q", updated.Mensaje)
	}
}

func TestNotificacionRemove_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newNotificacionService(t)

	err := svc.Remove(context.Background(), uuid.New())
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

package services

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/repos"
	"github.com/hipotecalia/crm-backend/internal/types"
)

// testDeps bundles the handles a test needs to look behind the service.
type testDeps struct {
	db             *gorm.DB
	expedienteRepo repos.ExpedienteRepo
	clienteRepo    repos.ClienteRepo
	usuarioRepo    repos.UsuarioRepo
}

// openTestDB gives every test its own sqlite file so cases never share state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "crm_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.Usuario{},
		&types.Cliente{},
		&types.Proveedor{},
		&types.Expediente{},
		&types.Tarea{},
		&types.Documento{},
		&types.Notificacion{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

// seedCliente inserts a minimal Cliente directly through the repo.
func seedCliente(t *testing.T, db *gorm.DB) *types.Cliente {
	t.Helper()
	clienteRepo := repos.NewClienteRepo(db, testLogger(t))
	created, err := clienteRepo.Create(context.Background(), nil, &types.Cliente{
		Nombre:    "Ana",
		Apellidos: "Ruiz",
	})
	if err != nil {
		t.Fatalf("failed to seed cliente: %v", err)
	}
	return created
}

func seedBroker(t *testing.T, db *gorm.DB) *types.Usuario {
	t.Helper()
	usuarioRepo := repos.NewUsuarioRepo(db, testLogger(t))
	created, err := usuarioRepo.Create(context.Background(), nil, &types.Usuario{
		Nombre:    "Marta",
		Apellidos: "Vega",
		Email:     "marta@hipotecalia.test",
		Password:  "not-a-real-hash",
		Rol:       types.RolBroker,
	})
	if err != nil {
		t.Fatalf("failed to seed broker: %v", err)
	}
	return created
}

func seedExpediente(t *testing.T, db *gorm.DB) *types.Expediente {
	t.Helper()
	cliente := seedCliente(t, db)
	broker := seedBroker(t, db)
	expedienteRepo := repos.NewExpedienteRepo(db, testLogger(t))
	created, err := expedienteRepo.Create(context.Background(), nil, &types.Expediente{
		Estado:      types.EstadoAbierto,
		Descripcion: "compra vivienda habitual",
		ClienteID:   cliente.ID,
		BrokerID:    broker.ID,
	})
	if err != nil {
		t.Fatalf("failed to seed expediente: %v", err)
	}
	return created
}

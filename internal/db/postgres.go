package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hipotecalia/crm-backend/internal/config"
	"github.com/hipotecalia/crm-backend/internal/platform/logger"
	"github.com/hipotecalia/crm-backend/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(cfg *config.Config, log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.Usuario{},
		&types.Cliente{},
		&types.Proveedor{},
		&types.Expediente{},
		&types.Tarea{},
		&types.Documento{},
		&types.Notificacion{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	fks := []struct {
		name, table, column, refTable string
	}{
		{"fk_expediente_cliente_id", "expediente", "cliente_id", "cliente"},
		{"fk_expediente_broker_id", "expediente", "broker_id", "usuario"},
		{"fk_tarea_expediente_id", "tarea", "expediente_id", "expediente"},
		{"fk_documento_expediente_id", "documento", "expediente_id", "expediente"},
		{"fk_notificacion_expediente_id", "notificacion", "expediente_id", "expediente"},
		{"fk_notificacion_tarea_id", "notificacion", "tarea_id", "tarea"},
	}
	for _, fk := range fks {
		if err := s.addFK(fk.name, fk.table, fk.column, fk.refTable); err != nil {
			return err
		}
	}
	return nil
}

// addFK is idempotent so AutoMigrateAll can run on every boot.
func (s *PostgresService) addFK(name, table, column, refTable string) error {
	var count int64
	err := s.db.Raw(
		`SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ? AND table_name = ?`,
		name, table,
	).Scan(&count).Error
	if err != nil {
		return fmt.Errorf("Failed to check constraint %s: %w", name, err)
	}
	if count > 0 {
		return nil
	}
	stmt := fmt.Sprintf(
		`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q("id") ON DELETE CASCADE`,
		table, name, column, refTable,
	)
	if err := s.db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("Failed to add %s: %w", name, err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

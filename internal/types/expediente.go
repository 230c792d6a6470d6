package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EstadoExpediente string

const (
	EstadoAbierto   EstadoExpediente = "ABIERTO"
	EstadoEnProceso EstadoExpediente = "EN_PROCESO"
	EstadoCerrado   EstadoExpediente = "CERRADO"
)

// Valid reports whether the value is a known state. There is no transition
// ordering: any state may be set from any other (documented behavior, not an
// oversight).
func (e EstadoExpediente) Valid() bool {
	switch e {
	case EstadoAbierto, EstadoEnProceso, EstadoCerrado:
		return true
	}
	return false
}

// Expediente is a case file for one engagement: one Cliente, one responsible
// broker, plus the tasks, documents and notifications scoped to it. Datos is
// an opaque JSON payload the dashboard shapes as it needs.
type Expediente struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Estado      EstadoExpediente `gorm:"column:estado;not null;default:'ABIERTO'" json:"estado"`
	Descripcion string           `gorm:"column:descripcion" json:"descripcion,omitempty"`
	Datos       datatypes.JSON   `gorm:"column:datos;type:jsonb" json:"datos,omitempty"`

	ClienteID uuid.UUID `gorm:"type:uuid;not null;index;column:cliente_id" json:"clienteId"`
	Cliente   *Cliente  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClienteID;references:ID" json:"cliente,omitempty"`
	BrokerID  uuid.UUID `gorm:"type:uuid;not null;index;column:broker_id" json:"brokerId"`
	Broker    *Usuario  `gorm:"constraint:OnDelete:RESTRICT;foreignKey:BrokerID;references:ID" json:"broker,omitempty"`

	Tareas         []Tarea        `gorm:"foreignKey:ExpedienteID;references:ID" json:"tareas,omitempty"`
	Documentos     []Documento    `gorm:"foreignKey:ExpedienteID;references:ID" json:"documentos,omitempty"`
	Notificaciones []Notificacion `gorm:"foreignKey:ExpedienteID;references:ID" json:"notificaciones,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Expediente) TableName() string {
	return "expediente"
}

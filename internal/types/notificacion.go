package types

import (
	"time"

	"github.com/google/uuid"
)

type Notificacion struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Mensaje string    `gorm:"column:mensaje;not null" json:"mensaje"`
	Leida   bool      `gorm:"column:leida;not null;default:false" json:"leida"`

	ExpedienteID uuid.UUID   `gorm:"type:uuid;not null;index;column:expediente_id" json:"expedienteId"`
	Expediente   *Expediente `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpedienteID;references:ID" json:"expediente,omitempty"`
	TareaID      uuid.UUID   `gorm:"type:uuid;not null;index;column:tarea_id" json:"tareaId"`
	Tarea        *Tarea      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TareaID;references:ID" json:"tarea,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Notificacion) TableName() string {
	return "notificacion"
}

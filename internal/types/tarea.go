package types

import (
	"time"

	"github.com/google/uuid"
)

type Tarea struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Titulo      string     `gorm:"column:titulo;not null" json:"titulo"`
	Descripcion string     `gorm:"column:descripcion" json:"descripcion,omitempty"`
	FechaLimite *time.Time `gorm:"column:fecha_limite" json:"fecha_limite,omitempty"`
	Completada  bool       `gorm:"column:completada;not null;default:false" json:"completada"`

	ExpedienteID uuid.UUID   `gorm:"type:uuid;not null;index;column:expediente_id" json:"expedienteId"`
	Expediente   *Expediente `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpedienteID;references:ID" json:"expediente,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Tarea) TableName() string {
	return "tarea"
}

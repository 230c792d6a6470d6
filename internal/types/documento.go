package types

import (
	"time"

	"github.com/google/uuid"
)

// Documento records an uploaded file: Nombre keeps the original filename,
// URL points at the stored copy.
type Documento struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre   string    `gorm:"column:nombre;not null" json:"nombre"`
	TipoMime string    `gorm:"column:tipo_mime" json:"tipo_mime"`
	URL      string    `gorm:"column:url;not null" json:"url"`

	ExpedienteID uuid.UUID   `gorm:"type:uuid;not null;index;column:expediente_id" json:"expedienteId"`
	Expediente   *Expediente `gorm:"constraint:OnDelete:CASCADE;foreignKey:ExpedienteID;references:ID" json:"expediente,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Documento) TableName() string {
	return "documento"
}

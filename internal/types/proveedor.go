package types

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is a third-party vendor. It has no relation to case files in the
// current schema.
type Proveedor struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre   string    `gorm:"column:nombre;not null" json:"nombre"`
	Contacto string    `gorm:"column:contacto" json:"contacto,omitempty"`
	Email    string    `gorm:"column:email" json:"email,omitempty"`
	Telefono string    `gorm:"column:telefono" json:"telefono,omitempty"`
	Notas    string    `gorm:"column:notas" json:"notas,omitempty"`
	Logo     string    `gorm:"column:logo" json:"logo,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Proveedor) TableName() string {
	return "proveedor"
}

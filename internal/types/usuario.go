package types

import (
	"time"

	"github.com/google/uuid"
)

type Rol string

const (
	RolAdmin     Rol = "ADMIN"
	RolBroker    Rol = "BROKER"
	RolAssistant Rol = "ASSISTANT"
)

func (r Rol) Valid() bool {
	switch r {
	case RolAdmin, RolBroker, RolAssistant:
		return true
	}
	return false
}

// Usuario is a staff account. Password holds the bcrypt hash, never the
// plaintext, and is excluded from every JSON response.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre    string    `gorm:"column:nombre;not null" json:"nombre"`
	Apellidos string    `gorm:"column:apellidos;not null" json:"apellidos"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Rol       Rol       `gorm:"column:rol;not null" json:"rol"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Usuario) TableName() string {
	return "usuario"
}

package types

import (
	"time"

	"github.com/google/uuid"
)

type EstadoCivil string

const (
	EstadoCivilSoltero    EstadoCivil = "SOLTERO"
	EstadoCivilCasado     EstadoCivil = "CASADO"
	EstadoCivilDivorciado EstadoCivil = "DIVORCIADO"
	EstadoCivilViudo      EstadoCivil = "VIUDO"
)

func (e EstadoCivil) Valid() bool {
	switch e {
	case EstadoCivilSoltero, EstadoCivilCasado, EstadoCivilDivorciado, EstadoCivilViudo:
		return true
	}
	return false
}

type CategoriaEmpleo string

const (
	CategoriaEmpleado    CategoriaEmpleo = "EMPLEADO_CUENTA_AJENA"
	CategoriaAutonomo    CategoriaEmpleo = "AUTONOMO"
	CategoriaDesempleado CategoriaEmpleo = "DESEMPLEADO"
	CategoriaJubilado    CategoriaEmpleo = "JUBILADO"
)

func (c CategoriaEmpleo) Valid() bool {
	switch c {
	case CategoriaEmpleado, CategoriaAutonomo, CategoriaDesempleado, CategoriaJubilado:
		return true
	}
	return false
}

// Cliente is a mortgage applicant: identity, employment and the financial
// picture the broker works from.
type Cliente struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Nombre          string       `gorm:"column:nombre;not null" json:"nombre"`
	Apellidos       string       `gorm:"column:apellidos;not null" json:"apellidos"`
	FechaNacimiento *time.Time   `gorm:"column:fecha_nacimiento" json:"fechaNacimiento,omitempty"`
	Nacionalidad    string       `gorm:"column:nacionalidad" json:"nacionalidad,omitempty"`
	EstadoCivil     *EstadoCivil `gorm:"column:estado_civil" json:"estadoCivil,omitempty"`
	NumHijos        *int         `gorm:"column:num_hijos" json:"numHijos,omitempty"`
	DNI             string       `gorm:"column:dni" json:"dni,omitempty"`
	Telefono        string       `gorm:"column:telefono" json:"telefono,omitempty"`
	Email           string       `gorm:"column:email" json:"email,omitempty"`
	DireccionActual string       `gorm:"column:direccion_actual" json:"direccionActual,omitempty"`
	TiempoViviendo  *int         `gorm:"column:tiempo_viviendo" json:"tiempoViviendo,omitempty"`

	TipoEmpleo      string           `gorm:"column:tipo_empleo" json:"tipoEmpleo,omitempty"`
	CategoriaEmpleo *CategoriaEmpleo `gorm:"column:categoria_empleo" json:"categoriaEmpleo,omitempty"`

	IngresosNetosMensuales   *float64 `gorm:"column:ingresos_netos_mensuales" json:"ingresosNetosMensuales,omitempty"`
	AhorrosDisponibles       *float64 `gorm:"column:ahorros_disponibles" json:"ahorrosDisponibles,omitempty"`
	OtrosIngresos            *float64 `gorm:"column:otros_ingresos" json:"otrosIngresos,omitempty"`
	DeudaPrestamosPersonales *float64 `gorm:"column:deuda_prestamos_personales" json:"deudaPrestamosPersonales,omitempty"`
	DeudaCoche               *float64 `gorm:"column:deuda_coche" json:"deudaCoche,omitempty"`
	DeudaTarjetasCredito     *float64 `gorm:"column:deuda_tarjetas_credito" json:"deudaTarjetasCredito,omitempty"`
	DeudaOtrasHipotecas      *float64 `gorm:"column:deuda_otras_hipotecas" json:"deudaOtrasHipotecas,omitempty"`
	CuotasMensualesDeudas    *float64 `gorm:"column:cuotas_mensuales_deudas" json:"cuotasMensualesDeudas,omitempty"`

	Notas string `gorm:"column:notas" json:"notas,omitempty"`

	Expedientes []Expediente `gorm:"foreignKey:ClienteID;references:ID" json:"expedientes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Cliente) TableName() string {
	return "cliente"
}

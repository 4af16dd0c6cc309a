package models

import "time"

type Alumno struct {
	ID       uint   `gorm:"primaryKey"       json:"id"`
	Nombre   string `gorm:"size:50;not null" json:"nombre"`
	Apellido string `gorm:"size:50;not null" json:"apellido"`
	// YYYY-MM-DD; la completa el preceptor después del alta
	FechaNacimiento *string `gorm:"size:10" json:"fecha_nacimiento"`
	// Curso/año (ej. "5A"); lo fija el admin al crear y es la clave de alcance del preceptor
	CursoAnio   string     `gorm:"size:20;not null;index" json:"curso_anio"`
	Orientacion *string    `gorm:"size:60" json:"orientacion"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

package models

import "time"

// Registro diario que deja el reconocedor facial; de solo lectura para el panel.
type Asistencia struct {
	ID       uint   `gorm:"primaryKey"       json:"id"`
	AlumnoID uint   `gorm:"index;not null"   json:"alumno_id"`
	Fecha    string `gorm:"size:19;not null" json:"fecha"`  // YYYY-MM-DD HH:MM:SS
	Estado   string `gorm:"size:20;not null" json:"estado"` // presente | ausente

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"strings"
	"time"
)

type Preceptor struct {
	ID       uint   `gorm:"primaryKey"                   json:"id"`
	Username string `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null"                     json:"-"`      // bcrypt hash, nunca se devuelve
	Rol      string `gorm:"size:20;not null"             json:"rol"`    // "admin" | "preceptor"
	// Lista de cursos separada por comas (ej. "5A, 5B"); null = sin cursos asignados
	CursosACargo *string   `gorm:"size:120" json:"cursos_a_cargo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Cursos devuelve la lista de cursos a cargo, recortada y sin vacíos.
func (p *Preceptor) Cursos() []string {
	if p.CursosACargo == nil {
		return nil
	}
	var cursos []string
	for _, c := range strings.Split(*p.CursosACargo, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cursos = append(cursos, c)
		}
	}
	return cursos
}

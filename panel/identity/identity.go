// Package identity resuelve quién está operando el panel: rol y, para
// preceptores, los cursos a su cargo. Derivación pura sobre datos ya
// provistos; acá no se habla con el servidor ni se toca estado global.
package identity

import (
	"regexp"
	"strings"

	"github.com/tremendez-coder/Asistencia-gil-3/models"
)

type Rol string

const (
	RolAdmin     Rol = "admin"
	RolPreceptor Rol = "preceptor"
)

// Contexto es la identidad vigente de la sesión. Es un valor inmutable: se
// construye una vez por sesión y se pasa explícito a cada componente; si la
// identidad cambia se construye uno nuevo.
type Contexto struct {
	Usuario string
	Rol     Rol
	// Cursos del preceptor; vacío = todavía sin restricción resoluble
	Cursos []string
}

// El rol viene como marcador entre paréntesis al final del fragmento de
// sesión, ej. "Bienvenido juan (Preceptor)".
var marcadorRol = regexp.MustCompile(`(?i)\((admin|preceptor)\)`)

// ResolverRol extrae el rol del texto de identidad; ok=false si no hay sesión.
func ResolverRol(texto string) (Rol, bool) {
	m := marcadorRol.FindStringSubmatch(texto)
	if m == nil {
		return "", false
	}
	return Rol(strings.ToLower(m[1])), true
}

// ResolverUsuario extrae el nombre de usuario del mismo fragmento
// ("Bienvenido juan (Preceptor)" → "juan").
func ResolverUsuario(texto string) string {
	campos := strings.Fields(texto)
	if len(campos) < 2 {
		return ""
	}
	return campos[1]
}

// ResolverCursos busca al preceptor logueado en la colección y parsea su
// lista de cursos. Devuelve nil si no hay match o el campo está vacío.
// Es idempotente: se puede volver a llamar cuando la colección cambie.
func ResolverCursos(usuario string, preceptores []models.Preceptor) []string {
	for i := range preceptores {
		if preceptores[i].Username == usuario {
			return preceptores[i].Cursos()
		}
	}
	return nil
}

// CursoPermitido dice si un curso cae dentro del alcance del contexto.
// Admin no tiene restricción; preceptor sin cursos resueltos tampoco
// (comportamiento heredado, ver nota en scope).
func (c Contexto) CursoPermitido(curso string) bool {
	if c.Rol != RolPreceptor || len(c.Cursos) == 0 {
		return true
	}
	for _, cc := range c.Cursos {
		if cc == curso {
			return true
		}
	}
	return false
}

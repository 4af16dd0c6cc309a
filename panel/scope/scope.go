// Package scope reduce las colecciones crudas a lo que el rol vigente puede
// ver. Filtro puro: no toca la entrada y conserva el orden relativo.
package scope

import (
	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
)

// FiltrarAlumnos deja solo los alumnos de los cursos a cargo del preceptor.
// Admin ve todo. Un preceptor con cursos sin resolver también ve todo:
// comportamiento heredado del sistema original, documentado y mantenido
// a propósito.
func FiltrarAlumnos(ctx identity.Contexto, alumnos []models.Alumno) []models.Alumno {
	if ctx.Rol != identity.RolPreceptor || len(ctx.Cursos) == 0 {
		return alumnos
	}
	var visibles []models.Alumno
	for _, a := range alumnos {
		if ctx.CursoPermitido(a.CursoAnio) {
			visibles = append(visibles, a)
		}
	}
	return visibles
}

// Package permissions es el punto de decisión único sobre qué acciones y qué
// campos puede tocar cada rol. Funciones puras de (contexto, registro): se
// recomputan en cada render, nunca se cachean, así siguen siendo correctas
// aunque haya operaciones solapadas en vuelo.
package permissions

import (
	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/panel/identity"
)

type Accion string

const (
	AccionCapturar Accion = "capturar_rostros"
	AccionEditar   Accion = "editar"
	AccionEliminar Accion = "eliminar"
)

// ----- Alumnos -----

func PuedeCrearAlumno(ctx identity.Contexto) bool {
	return ctx.Rol == identity.RolAdmin
}

func PuedeEditarAlumno(ctx identity.Contexto, a models.Alumno) bool {
	switch ctx.Rol {
	case identity.RolAdmin:
		return true
	case identity.RolPreceptor:
		return ctx.CursoPermitido(a.CursoAnio)
	}
	return false
}

func PuedeEliminarAlumno(ctx identity.Contexto) bool {
	return ctx.Rol == identity.RolAdmin
}

func PuedeCapturarRostros(ctx identity.Contexto) bool {
	return ctx.Rol == identity.RolAdmin
}

// AccionesAlumno arma los botones de la fila de un alumno. Renderizar una
// acción que no salga de acá es un defecto del panel.
func AccionesAlumno(ctx identity.Contexto, a models.Alumno) []Accion {
	var acciones []Accion
	if PuedeCapturarRostros(ctx) {
		acciones = append(acciones, AccionCapturar)
	}
	if PuedeEditarAlumno(ctx, a) {
		acciones = append(acciones, AccionEditar)
	}
	if PuedeEliminarAlumno(ctx) {
		acciones = append(acciones, AccionEliminar)
	}
	return acciones
}

// CamposAlumno es el subconjunto de campos que el rol envía al guardar un
// alumno. Ojo: los conjuntos de admin y preceptor son disjuntos en parte,
// no uno contenido en el otro.
func CamposAlumno(ctx identity.Contexto) []string {
	switch ctx.Rol {
	case identity.RolAdmin:
		return []string{"nombre", "apellido", "curso_anio"}
	case identity.RolPreceptor:
		return []string{"nombre", "apellido", "fecha_nacimiento", "orientacion"}
	}
	return nil
}

// ----- Preceptores -----

// Alta, baja y edición de preceptores: solo admin.
func PuedeGestionarPreceptores(ctx identity.Contexto) bool {
	return ctx.Rol == identity.RolAdmin
}

// CamposPreceptor: al crear van username, password y cursos; una vez que la
// cuenta existe solo se reasignan cursos (username/password inmutables).
func CamposPreceptor(existente bool) []string {
	if existente {
		return []string{"cursos_a_cargo"}
	}
	return []string{"username", "password", "cursos_a_cargo"}
}

// ----- Asistencias -----

// La tabla de asistencias solo se le muestra al preceptor.
func PuedeVerAsistencias(ctx identity.Contexto) bool {
	return ctx.Rol == identity.RolPreceptor
}

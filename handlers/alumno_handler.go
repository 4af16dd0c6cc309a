package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tremendez-coder/Asistencia-gil-3/database"
	"github.com/tremendez-coder/Asistencia-gil-3/models"
)

type AlumnoHandler struct{}

func NewAlumnoHandler() *AlumnoHandler { return &AlumnoHandler{} }

type alumnoPayload struct {
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	CursoAnio       string  `json:"curso_anio"`
	Orientacion     *string `json:"orientacion"`
}

func (p *alumnoPayload) normalize() {
	p.Nombre = strings.Join(strings.Fields(p.Nombre), " ")
	p.Apellido = strings.Join(strings.Fields(p.Apellido), " ")
	p.CursoAnio = strings.TrimSpace(p.CursoAnio)
	if p.FechaNacimiento != nil {
		f := strings.TrimSpace(*p.FechaNacimiento)
		if f == "" {
			p.FechaNacimiento = nil
		} else {
			p.FechaNacimiento = &f
		}
	}
	if p.Orientacion != nil {
		o := strings.TrimSpace(*p.Orientacion)
		if o == "" {
			p.Orientacion = nil
		} else {
			p.Orientacion = &o
		}
	}
}

func (p *alumnoPayload) validarBase() string {
	if p.Nombre == "" {
		return "el nombre es obligatorio"
	}
	if p.Apellido == "" {
		return "el apellido es obligatorio"
	}
	if p.FechaNacimiento != nil {
		if _, err := time.Parse("2006-01-02", *p.FechaNacimiento); err != nil {
			return "fecha_nacimiento debe ser YYYY-MM-DD"
		}
	}
	return ""
}

// Cursos a cargo del preceptor logueado; lista vacía = sin restricción todavía.
func cursosDelUsuario(username string) ([]string, error) {
	var p models.Preceptor
	if err := database.DB.First(&p, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p.Cursos(), nil
}

func cursoPermitido(cursos []string, curso string) bool {
	if len(cursos) == 0 {
		return true
	}
	for _, c := range cursos {
		if c == curso {
			return true
		}
	}
	return false
}

func (h *AlumnoHandler) List(c echo.Context) error {
	var alumnos []models.Alumno
	if err := database.DB.Order("id").Find(&alumnos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudieron cargar los alumnos"})
	}
	return c.JSON(http.StatusOK, alumnos)
}

// Alta de alumno (solo admin): nombre, apellido y curso_anio; el resto lo
// completa después el preceptor del curso.
func (h *AlumnoHandler) Create(c echo.Context) error {
	var p alumnoPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "payload inválido"})
	}
	p.normalize()
	if msg := p.validarBase(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	if p.CursoAnio == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "el curso/año es obligatorio"})
	}

	a := models.Alumno{Nombre: p.Nombre, Apellido: p.Apellido, CursoAnio: p.CursoAnio}
	if err := database.DB.Create(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

// El admin corrige nombre/apellido/curso; el preceptor enriquece la ficha
// (fecha de nacimiento, orientación) sin poder tocar el curso. Devuelve false
// si el rol no puede editar alumnos.
func aplicarEdicion(rol string, existing *models.Alumno, p alumnoPayload) bool {
	switch rol {
	case "admin":
		if p.CursoAnio != "" {
			existing.CursoAnio = p.CursoAnio
		}
		existing.Nombre = p.Nombre
		existing.Apellido = p.Apellido
	case "preceptor":
		existing.Nombre = p.Nombre
		existing.Apellido = p.Apellido
		existing.FechaNacimiento = p.FechaNacimiento
		existing.Orientacion = p.Orientacion
	default:
		return false
	}
	return true
}

func (h *AlumnoHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var existing models.Alumno
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "alumno no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo consultar el alumno"})
	}

	var p alumnoPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "payload inválido"})
	}
	p.normalize()
	if msg := p.validarBase(); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	rol, _ := c.Get("rol").(string)
	if rol == "preceptor" {
		usuario, _ := c.Get("usuario").(string)
		cursos, err := cursosDelUsuario(usuario)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo resolver el alcance del preceptor"})
		}
		if !cursoPermitido(cursos, existing.CursoAnio) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "el alumno no pertenece a tus cursos"})
		}
	}
	if !aplicarEdicion(rol, &existing, p) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "no tienes permiso para esta acción"})
	}

	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *AlumnoHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	res := database.DB.Delete(&models.Alumno{}, "id = ?", id)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "alumno no encontrado"})
	}
	return c.NoContent(http.StatusNoContent)
}

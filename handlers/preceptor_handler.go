package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tremendez-coder/Asistencia-gil-3/database"
	"github.com/tremendez-coder/Asistencia-gil-3/models"
)

type PreceptorHandler struct{}

func NewPreceptorHandler() *PreceptorHandler { return &PreceptorHandler{} }

type preceptorPayload struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	CursosACargo *string `json:"cursos_a_cargo"`
}

func (p *preceptorPayload) normalize() {
	p.Username = strings.TrimSpace(p.Username)
	if p.CursosACargo != nil {
		cc := strings.TrimSpace(*p.CursosACargo)
		if cc == "" {
			p.CursosACargo = nil
		} else {
			p.CursosACargo = &cc
		}
	}
}

// La lista la consume también el preceptor logueado para resolver sus cursos;
// el hash de password nunca sale (json:"-").
func (h *PreceptorHandler) List(c echo.Context) error {
	var preceptores []models.Preceptor
	if err := database.DB.Order("id").Find(&preceptores).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudieron cargar los preceptores"})
	}
	return c.JSON(http.StatusOK, preceptores)
}

func (h *PreceptorHandler) Create(c echo.Context) error {
	var p preceptorPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "payload inválido"})
	}
	p.normalize()
	if p.Username == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "el username es obligatorio"})
	}
	if p.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "la contraseña es obligatoria"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo procesar la contraseña"})
	}
	pr := models.Preceptor{
		Username:     p.Username,
		Password:     string(hash),
		Rol:          "preceptor",
		CursosACargo: p.CursosACargo,
	}
	if err := database.DB.Create(&pr).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no se pudo crear el preceptor (¿username repetido?)"})
	}
	return c.JSON(http.StatusCreated, pr)
}

// Desde el panel solo se reasignan cursos; username y password quedan
// inmutables una vez creada la cuenta, aunque el payload los traiga.
func aplicarReasignacion(existing *models.Preceptor, p preceptorPayload) {
	existing.CursosACargo = p.CursosACargo
}

func (h *PreceptorHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var existing models.Preceptor
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "preceptor no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo consultar el preceptor"})
	}

	var p preceptorPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "payload inválido"})
	}
	p.normalize()

	aplicarReasignacion(&existing, p)
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *PreceptorHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	var existing models.Preceptor
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "preceptor no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo consultar el preceptor"})
	}
	if existing.Rol == "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "no se puede eliminar la cuenta admin"})
	}
	if err := database.DB.Delete(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

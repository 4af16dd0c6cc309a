package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tremendez-coder/Asistencia-gil-3/database"
	"github.com/tremendez-coder/Asistencia-gil-3/models"
	"github.com/tremendez-coder/Asistencia-gil-3/recognition"
)

type ReconocimientoHandler struct {
	launcher *recognition.Launcher
}

func NewReconocimientoHandler(l *recognition.Launcher) *ReconocimientoHandler {
	return &ReconocimientoHandler{launcher: l}
}

func (h *ReconocimientoHandler) respuestaLanzamiento(c echo.Context, err error, mensaje string) error {
	if err != nil {
		if errors.Is(err, recognition.ErrJobEnCurso) {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"mensaje": mensaje})
}

// POST /students/:id/capture: alta de rostros para el reconocedor (solo admin).
func (h *ReconocimientoHandler) Capture(c echo.Context) error {
	id := c.Param("id")
	var a models.Alumno
	if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "alumno no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudo consultar el alumno"})
	}

	err := h.launcher.Capture(a.ID, a.Nombre+" "+a.Apellido)
	return h.respuestaLanzamiento(c, err,
		fmt.Sprintf("Captura de rostros iniciada para %s %s", a.Nombre, a.Apellido))
}

// POST /recognition/train
func (h *ReconocimientoHandler) Train(c echo.Context) error {
	err := h.launcher.Train()
	return h.respuestaLanzamiento(c, err, "Entrenamiento del reconocedor iniciado")
}

// POST /recognition/start
func (h *ReconocimientoHandler) Start(c echo.Context) error {
	err := h.launcher.Recognize()
	return h.respuestaLanzamiento(c, err, "Reconocimiento en tiempo real iniciado")
}

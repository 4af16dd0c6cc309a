package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/tremendez-coder/Asistencia-gil-3/database"
	"github.com/tremendez-coder/Asistencia-gil-3/models"
)

type AsistenciaHandler struct{}

func NewAsistenciaHandler() *AsistenciaHandler { return &AsistenciaHandler{} }

func (h *AsistenciaHandler) List(c echo.Context) error {
	limit := atoiOr(c.QueryParam("limit"), 0)

	var asistencias []models.Asistencia
	tx := database.DB.Order("id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&asistencias).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudieron cargar las asistencias"})
	}
	return c.JSON(http.StatusOK, asistencias)
}

// Planilla xlsx con nombre, estado y hora de marcado, como la que bajaba la
// versión vieja del sistema.
func (h *AsistenciaHandler) Export(c echo.Context) error {
	var asistencias []models.Asistencia
	if err := database.DB.Order("id").Find(&asistencias).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudieron cargar las asistencias"})
	}

	var alumnos []models.Alumno
	if err := database.DB.Find(&alumnos).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no se pudieron cargar los alumnos"})
	}
	nombres := make(map[uint]string, len(alumnos))
	for _, a := range alumnos {
		nombres[a.ID] = a.Nombre + " " + a.Apellido
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Asistencia"
	f.SetSheetName("Sheet1", hoja)
	f.SetCellValue(hoja, "A1", "Nombre")
	f.SetCellValue(hoja, "B1", "Estado")
	f.SetCellValue(hoja, "C1", "Hora de reconocimiento")

	for i, asis := range asistencias {
		fila := i + 2
		nombre := nombres[asis.AlumnoID]
		if nombre == "" {
			nombre = fmt.Sprintf("alumno %d", asis.AlumnoID)
		}
		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), nombre)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), asis.Estado)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", fila), asis.Fecha)
	}

	nombreArchivo := fmt.Sprintf("asistencia_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombreArchivo))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}

package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/tremendez-coder/Asistencia-gil-3/config"
	"github.com/tremendez-coder/Asistencia-gil-3/handlers"
	"github.com/tremendez-coder/Asistencia-gil-3/middlewares"
	"github.com/tremendez-coder/Asistencia-gil-3/recognition"
)

// Register arma todas las rutas HTTP.
func Register(e *echo.Echo, cfg *config.Config) {
	al := handlers.NewAlumnoHandler()
	pr := handlers.NewPreceptorHandler()
	as := handlers.NewAsistenciaHandler()
	rec := handlers.NewReconocimientoHandler(
		recognition.NewLauncher(cfg.CaptureCmd, cfg.TrainCmd, cfg.RecognizeCmd))

	e.GET("/health", handlers.Health)

	// Todas las rutas del panel exigen identidad ya resuelta (X-Usuario/X-Rol);
	// el login vive fuera de este sistema.
	api := e.Group("", middlewares.Identity())

	soloAdmin := middlewares.RequireRole("admin")
	ambos := middlewares.RequireRole("admin", "preceptor")

	// Alumnos
	api.GET("/students", al.List, ambos)
	api.POST("/students", al.Create, soloAdmin)
	api.PUT("/students/:id", al.Update, ambos)
	api.DELETE("/students/:id", al.Delete, soloAdmin)

	// Preceptores: la lista también la lee el preceptor para resolver sus
	// cursos; crear/editar/borrar es solo admin.
	api.GET("/preceptors", pr.List, ambos)
	api.POST("/preceptors", pr.Create, soloAdmin)
	api.PUT("/preceptors/:id", pr.Update, soloAdmin)
	api.DELETE("/preceptors/:id", pr.Delete, soloAdmin)

	// Asistencias (solo lectura desde el panel)
	api.GET("/attendance", as.List, ambos)
	api.GET("/attendance/export", as.Export, ambos)

	// Reconocimiento facial (trabajos externos, solo se aceptan)
	api.POST("/students/:id/capture", rec.Capture, soloAdmin)
	api.POST("/recognition/train", rec.Train, ambos)
	api.POST("/recognition/start", rec.Start, ambos)
}

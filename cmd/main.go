package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tremendez-coder/Asistencia-gil-3/config"
	"github.com/tremendez-coder/Asistencia-gil-3/database"
	"github.com/tremendez-coder/Asistencia-gil-3/routes"
)

func main() {
	cfg := config.Load()

	// Si la DB no está levantada conviene morir acá, temprano
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

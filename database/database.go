package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tremendez-coder/Asistencia-gil-3/config"
	"github.com/tremendez-coder/Asistencia-gil-3/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Alumno{},
		&models.Preceptor{},
		&models.Asistencia{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	seedAdmin(cfg)
}

// Crea la cuenta admin si todavía no existe (primer arranque).
func seedAdmin(cfg *config.Config) {
	var count int64
	if err := DB.Model(&models.Preceptor{}).Where("rol = ?", "admin").Count(&count).Error; err != nil {
		log.Printf("[seed] warn: no se pudo consultar admins: %v", err)
		return
	}
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] warn: hash de password admin falló: %v", err)
		return
	}
	admin := models.Preceptor{Username: "admin", Password: string(hash), Rol: "admin"}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("[seed] warn: no se pudo crear admin: %v", err)
		return
	}
	log.Printf("[seed] cuenta admin creada")
}

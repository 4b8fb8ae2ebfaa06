package main

import (
	"context"
	"log"

	"examer/internal/config"
	"examer/internal/db"
	"examer/internal/model"
	"examer/internal/repository"
	"examer/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Assessment{},
		&model.Submission{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	assessmentRepo := repository.NewAssessmentRepository(gormDB)
	seedService := service.NewSeedService(userRepo, assessmentRepo)

	created, err := seedService.SeedDemo(context.Background())
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeding completed, %d records created", created)
}

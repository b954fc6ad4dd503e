package main

import (
	"context"
	"flag"
	"log"
	"os"

	"agency-site-be/internal/config"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/internal/service"
	"agency-site-be/pkg/database"
)

func main() {
	dir := flag.String("dir", "seed", "directory holding globals.yaml and posts/*.md")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	mediaURLs, err := service.NewMediaURLBuilder(cfg.Media)
	if err != nil {
		log.Fatal("Error: Failed to initialize media URLs:", err)
	}
	renderService := service.NewRenderService(uowFactory, mediaURLs, cfg.Render, sysLogger)

	// no queue or bus: the seeder only writes rows
	globalService := service.NewGlobalService(uowFactory, renderService, nil, sysLogger)
	postService := service.NewPostService(uowFactory, renderService, mediaURLs, nil, nil, sysLogger)
	authService := service.NewAuthService(uowFactory, sysLogger)

	log.Println("Seeding Admin...")
	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		admin, err := authService.EnsureAdmin(ctx, email, password, getEnv("ADMIN_NAME", "Site Admin"))
		if err != nil {
			log.Fatalf("Error: Failed to seed admin: %v", err)
		}
		log.Printf("Admin ready: %s", admin.Email)
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin")
	}

	log.Println("Seeding Globals...")
	if err := seedGlobals(ctx, globalService, *dir); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("Seeding Posts...")
	if err := seedPosts(ctx, postService, *dir); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("✅ Seeding completed!")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

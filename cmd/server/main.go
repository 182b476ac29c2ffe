package main

import (
	"log"

	"github.com/jengzang/memories-backend-go/internal/api"
	"github.com/jengzang/memories-backend-go/internal/config"
	"github.com/jengzang/memories-backend-go/internal/database"

	// Import the strategy package to register clustering strategies
	_ "github.com/jengzang/memories-backend-go/internal/cluster/strategy"
)

func main() {
	cfg := config.Load()

	if err := database.Init(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	migrations := database.NewMigrationManager(database.GetDB())
	if err := migrations.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	router := api.SetupRouter(cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"

	"github.com/vipulchandan/BookManagement/assetstore"
	"github.com/vipulchandan/BookManagement/config"
	"github.com/vipulchandan/BookManagement/models"
	"github.com/vipulchandan/BookManagement/routes"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Book{}, &models.Review{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	assets, err := assetstore.NewDisk(cfg.UploadDir, cfg.BaseURL, "/covers")
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	r := routes.SetupRouter(routes.Dependencies{
		Stores:    storage.NewGorm(db).Stores(),
		Tokens:    utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Assets:    assets,
		CoversDir: cfg.UploadDir,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	addr := ":" + cfg.Port
	log.Printf("server running on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

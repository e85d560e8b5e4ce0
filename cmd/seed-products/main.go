package main

import (
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

func boolPtr(b bool) *bool { return &b }

var seedProducts = []models.ProductCreateRequest{
	{
		Title:       "Wireless Mechanical Keyboard",
		Description: "Hot-swappable 75% keyboard with gasket mount and USB-C",
		Code:        "KB-75-WL",
		Price:       12999,
		Status:      boolPtr(true),
		Stock:       40,
		Category:    "peripherals",
		Thumbnails:  []string{"/img/kb-75-wl-front.jpg"},
	},
	{
		Title:       "27\" QHD Monitor",
		Description: "165Hz IPS panel with adaptive sync and height-adjustable stand",
		Code:        "MON-27-QHD",
		Price:       29900,
		Status:      boolPtr(true),
		Stock:       15,
		Category:    "displays",
		Thumbnails:  []string{"/img/mon-27-qhd.jpg"},
	},
	{
		Title:       "USB-C Docking Station",
		Description: "Dual HDMI, gigabit ethernet and 100W passthrough charging",
		Code:        "DOCK-USBC",
		Price:       8450,
		Status:      boolPtr(true),
		Stock:       60,
		Category:    "accessories",
	},
	{
		Title:       "Ergonomic Vertical Mouse",
		Description: "Rechargeable vertical mouse with adjustable DPI",
		Code:        "MSE-ERGO",
		Price:       4599,
		Status:      boolPtr(true),
		Stock:       80,
		Category:    "peripherals",
	},
	{
		Title:       "Laptop Stand",
		Description: "Aluminium stand with six height positions",
		Code:        "STAND-ALU",
		Price:       3250,
		Status:      boolPtr(true),
		Stock:       100,
		Category:    "accessories",
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	productRepo := repositories.NewProductRepository(db.DB)

	created, skipped := 0, 0
	for i := range seedProducts {
		req := &seedProducts[i]

		exists, err := productRepo.CodeExists(req.Code)
		if err != nil {
			log.Fatalf("Failed to check product code %s: %v", req.Code, err)
		}
		if exists {
			skipped++
			continue
		}

		product, err := productRepo.Create(req, nil)
		if err != nil {
			log.Fatalf("Failed to create product %s: %v", req.Code, err)
		}

		fmt.Printf("Created product %d: %s (%s)\n", product.ID, product.Title, product.Code)
		created++
	}

	fmt.Printf("Done: %d created, %d skipped (already present)\n", created, skipped)
}

package main

import (
	"flag"
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

func main() {
	var (
		email     = flag.String("email", "", "Admin email (required)")
		password  = flag.String("password", "", "Admin password (required)")
		firstName = flag.String("first-name", "Admin", "First name")
		lastName  = flag.String("last-name", "User", "Last name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

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

	userRepo := repositories.NewUserRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	userService := services.NewUserService(userRepo, cartRepo)

	user, err := userService.CreateUser(&models.UserCreateRequest{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Age:       30,
		Password:  *password,
		Role:      models.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Created admin user %d (%s)\n", user.ID, user.Email)
}

// scripts/create_admin.go — seed the first admin account.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/config"
	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with username:", username)
		os.Exit(0)
	}

	u := models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created:", username)
}

package main

import (
	"flag"
	"log"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/config"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/database"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

func main() {
	email := flag.String("email", "", "email address for the new user")
	password := flag.String("password", "", "password for the new user")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "admin", "role to attach to the user")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: add_user -email <email> -password <password> [-first-name <name>] [-last-name <name>] [-role <role>]")
	}
	if len(*password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	config.Load()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if existing, err := database.GetUserByEmail(db, *email); err == nil && existing != nil {
		log.Fatalf("User %s already exists", *email)
	}

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if err := database.CreateUser(db, user, *role); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("Created user %s (%s) with role %s", user.Email, user.ID, *role)
}

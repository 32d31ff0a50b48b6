package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Ping-Win-Info/insavente/config"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Admin account
	email := "admin@insavente.fr"
	password := "ChangeMe!2024"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, email, hash, "Admin", entity.RoleAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	// Base forum categories
	categories := []struct {
		Name        string
		Description string
		Order       int
	}{
		{"Annonces", "News and announcements", 1},
		{"Bons plans", "Deals and tips", 2},
		{"Entraide", "Help and questions", 3},
		{"Discussions", "General discussion", 4},
	}
	for _, c := range categories {
		if _, err := db.Exec(`
			INSERT INTO forum_categories (name, description, sort_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, sort_order = EXCLUDED.sort_order
		`, c.Name, c.Description, c.Order); err != nil {
			log.Fatalf("failed to seed category %q: %v", c.Name, err)
		}
	}
	fmt.Printf("seeded %d forum categories\n", len(categories))
}

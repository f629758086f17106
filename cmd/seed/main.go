package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/jabaapp/user-service/config"
)

// seed ensures the base role catalog and a demo admin account exist.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	var adminRoleID, userRoleID string
	if err := db.QueryRow(`
		INSERT INTO roles (id, name) VALUES (gen_random_uuid(), 'admin')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&adminRoleID); err != nil {
		log.Fatalf("failed to upsert admin role: %v", err)
	}
	if err := db.QueryRow(`
		INSERT INTO roles (id, name) VALUES (gen_random_uuid(), 'user')
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&userRoleID); err != nil {
		log.Fatalf("failed to upsert user role: %v", err)
	}
	fmt.Printf("roles: admin=%s user=%s\n", adminRoleID, userRoleID)

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (id, name, login, email, password, last_update)
		VALUES (gen_random_uuid(), 'Administrator', 'admin', 'admin@example.com', 'admin123', now())
		ON CONFLICT (login) DO UPDATE SET last_update = now()
		RETURNING id
	`).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, adminID, adminRoleID); err != nil {
		log.Fatalf("failed to assign admin role: %v", err)
	}
	fmt.Printf("seeded admin user: id=%s login=admin\n", adminID)
}

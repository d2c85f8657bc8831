package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/stibodx/user-directory/config"
)

type seedUser struct {
	firstName string
	lastName  string
	dob       string
	email     string
	job       string
	street    string
	city      string
	state     string
	postal    string
	country   string
}

var demoUsers = []seedUser{
	{"Alice", "Johnson", "1985-06-20", "alice.johnson@example.com", "Product Manager", "123 Tech Street", "San Francisco", "CA", "94105", "USA"},
	{"John", "Doe", "1990-01-15", "john.doe@example.com", "Software Developer", "123 Main Street", "Springfield", "IL", "62701", "USA"},
	{"Maria", "Garcia", "1992-11-03", "maria.garcia@example.com", "Designer", "Calle Mayor 8", "Madrid", "", "28013", "Spain"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, su := range demoUsers {
		dob, err := time.Parse("2006-01-02", su.dob)
		if err != nil {
			log.Fatalf("bad seed date %q: %v", su.dob, err)
		}

		var id string
		err = db.QueryRow(`
			INSERT INTO users (first_name, last_name, date_of_birth, email, job)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (lower(email)) DO UPDATE SET job = EXCLUDED.job
			RETURNING id
		`, su.firstName, su.lastName, dob, su.email, su.job).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", su.email, err)
		}

		if _, err := db.Exec(`
			INSERT INTO addresses (user_id, street, city, state_province, postal_code, country, is_primary)
			SELECT $1, $2, $3, $4, $5, $6, true
			WHERE NOT EXISTS (SELECT 1 FROM addresses WHERE user_id = $1)
		`, id, su.street, su.city, su.state, su.postal, su.country); err != nil {
			log.Fatalf("failed to seed address for %s: %v", su.email, err)
		}

		fmt.Printf("seeded user: id=%s email=%s\n", id, su.email)
	}
}

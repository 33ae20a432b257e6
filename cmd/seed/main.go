package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	seedDemoPoll(db)
}

func seedDemoPoll(db *sql.DB) {
	// Demo owner must match a user id in the hosted auth provider.
	ownerID := uuid.Nil
	if raw := os.Getenv("SEED_OWNER_ID"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			log.Fatalf("invalid SEED_OWNER_ID: %v", err)
		}
		ownerID = parsed
	}

	pollID := uuid.New()

	pollQuery := `
		INSERT INTO polls (id, owner_id, question)
		VALUES ($1, $2, $3)
	`

	if _, err := db.Exec(pollQuery, pollID, ownerID, "What is your favorite Go web framework?"); err != nil {
		log.Fatalf("Failed to seed poll: %v", err)
	}

	optionQuery := `
		INSERT INTO poll_options (id, poll_id, label, position)
		VALUES ($1, $2, $3, $4)
	`

	for i, label := range []string{"net/http", "gin", "echo", "fiber"} {
		if _, err := db.Exec(optionQuery, uuid.New(), pollID, label, i); err != nil {
			log.Fatalf("Failed to seed poll option: %v", err)
		}
	}

	fmt.Printf("✅ Poll Seeded!\n   Poll: %s\n", pollID)
}

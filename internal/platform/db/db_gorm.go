// Package db opens the Postgres connection the store runs on and translates
// driver errors into the store's error kinds.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DefaultSchema is the namespaced Postgres schema all tables live in.
const DefaultSchema = "incrementum"

// OpenDB connects to Postgres using environment configuration, retrying for
// up to 60 seconds so the store survives a database that is still starting.
// Connection failure after the deadline is fatal.
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	schema := os.Getenv("DB_SCHEMA")
	if schema == "" {
		schema = DefaultSchema
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s,public",
		host, port, user, pass, name, schema)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	return db
}

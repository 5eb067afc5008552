// Command migrate brings the database schema up to date and exits. The same
// steps run on server startup; this binary exists for deploy pipelines that
// migrate before rolling the service.
package main

import (
	"log"

	"github.com/joho/godotenv"

	platformdb "incrementum/internal/platform/db"
	"incrementum/internal/platform/schema"
)

func main() {
	_ = godotenv.Load()

	db := platformdb.OpenDB()
	if err := schema.EnsureSchema(db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}
	log.Println("schema up to date")
}

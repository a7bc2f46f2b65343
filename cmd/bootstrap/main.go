package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/akashhsiv/api-drf/internal/auth/app"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/internal/auth/store/drivers/sqlite"
	"github.com/akashhsiv/api-drf/pkg/cryptox"
)

// bootstrap creates the first admin account. It is deliberately a separate
// binary with no HTTP surface; once an admin exists it refuses to run again.
func main() {
	_ = godotenv.Load()

	name := flag.String("name", "", "full name of the first admin")
	email := flag.String("email", "", "email address of the first admin")
	password := flag.String("password", "", "password for the first admin")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := app.LoadConfig()
	cryptox.SetPepperPath(cfg.PepperFile)

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("failed to apply database migrations: %v", err)
	}

	boot := &service.BootstrapService{Store: db}
	u, err := boot.CreateFirstAdmin(context.Background(), *name, *email, *password)
	if err != nil {
		log.Fatalf("failed to create first admin: %v", err)
	}

	fmt.Printf("created admin %s (%s)\n", u.Email, u.ID)
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/anahush1701/payment-resilience/internal/application/use_cases"
	gormdb "github.com/anahush1701/payment-resilience/internal/infrastructure/gorm"
	echoserver "github.com/anahush1701/payment-resilience/internal/presentation/echo"
	"github.com/anahush1701/payment-resilience/internal/utils/config"
)

func main() {
	cfg := config.Load()

	db, err := gormdb.NewConnection(cfg.DBPath)
	if err != nil {
		log.Printf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := gormdb.RunMigrations(db); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	if cfg.SeedDemoData {
		if err := gormdb.SeedDemoAccounts(db); err != nil {
			log.Printf("failed to seed demo accounts: %v", err)
			os.Exit(1)
		}
	}

	container := use_cases.NewContainer(context.Background(), db, cfg)

	server := echoserver.NewServer(cfg, container)

	errC := server.Start()
	if err := <-errC; err != nil {
		log.Printf("server error: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Masterbarreto/Api-Urna/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	// Absent .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log.Println("api-urna api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("api-urna api stopped with error: %v", err)
	}
}

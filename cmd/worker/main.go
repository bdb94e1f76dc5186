package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Masterbarreto/Api-Urna/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Run the booth staleness sweep on its interval.
func main() {
	// Absent .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log.Println("api-urna worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("api-urna worker stopped with error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kunal8987/Astrape-assignment/internal/client"
	"github.com/kunal8987/Astrape-assignment/pkg/global"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	stateDir := os.Getenv("ESHOP_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		stateDir = filepath.Join(home, ".eshop")
	}

	storage, err := client.NewFileStorage(stateDir)
	if err != nil {
		log.Fatalf("Failed to open state directory: %v", err)
	}

	store := client.NewStore(storage)
	api := client.NewAPIClient(global.GetEnvOrDefault("ESHOP_API_URL", "http://localhost:8000"))

	app := client.NewApp(store, api, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Client error: %v", err)
	}
}

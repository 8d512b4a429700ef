package main

import (
	"os"

	"github.com/KotVCompe/Desert-APP/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // Load .env file if it exists

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

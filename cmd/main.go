package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine; the environment and config.hcl still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yashir5686/disha-portal/cmd"
)

func main() {
	// Optional .env for local development; environment wins over file.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"log"

	"github.com/MrSnakeDoc/linkvault/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkvault failed: %v", err)
	}
}

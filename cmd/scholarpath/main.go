package main

import (
	"log"

	"github.com/scholarpath/scholarpath/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ scholarpath failed to start: %v", err)
	}
}

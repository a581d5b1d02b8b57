package main

import (
	"log"

	"github.com/aussiebroadwan/climblog/internal/devserver/app"
)

//go:generate swag init -g internal/devserver/http/router.go -d ../.. -o ../../api/devserver --parseDependency

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

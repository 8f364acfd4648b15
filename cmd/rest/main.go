package main

import (
	"context"
	"log"

	"slideweaver-be/internal/bootstrap"
	"slideweaver-be/internal/config"
	"slideweaver-be/internal/server"
	"slideweaver-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.GenerationService.Close()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-thinkspace-be/internal/bootstrap"
	"ai-thinkspace-be/internal/config"
	"ai-thinkspace-be/internal/server"
	"ai-thinkspace-be/internal/tracer"
	"ai-thinkspace-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Revision Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Flush pending autosaves on shutdown so no edit is lost
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutdown: flushing pending autosaves...")
		container.Coalescer.FlushAll()
		_ = srv.GetApp().Shutdown()
	}()

	// 7. Run Server
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yukikurage/taskboard/internal/client"
	"github.com/yukikurage/taskboard/internal/config"
	"github.com/yukikurage/taskboard/internal/ui"
)

func main() {
	cfg := config.LoadClient()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.Run(ctx, client.New(cfg)); err != nil {
		log.Fatalf("Dashboard failed: %v", err)
	}
}

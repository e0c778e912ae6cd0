package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/sam24eer/portfolio/internal/config"
	"github.com/sam24eer/portfolio/internal/content"
	"github.com/sam24eer/portfolio/internal/server"
	"github.com/sam24eer/portfolio/internal/store"
)

const configFile = "portfolio.yaml"

func main() {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	gin.SetMode(cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	holder, err := content.NewHolder(cfg.ContentFile)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	if cfg.WatchContent && cfg.ContentFile != "" {
		if err := holder.Watch(ctx); err != nil {
			log.Printf("Content watching disabled: %v", err)
		} else {
			log.Printf("Watching %s for changes", cfg.ContentFile)
		}
	}

	var st *store.Store
	if cfg.TrackVisitors || cfg.AdminEnabled() {
		st, err = store.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer st.Close()
	}
	if cfg.TrackVisitors {
		log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	}
	if cfg.AdminEnabled() {
		log.Printf("Admin access available at: /admin/login")
	}

	srv, err := server.New(cfg, holder, st)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"flag"
	"log"
	"os"

	"FxDash/internal/di"
	"FxDash/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	mockData := flag.Bool("mock", false, "serve generated data instead of calling the analytics backend")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *mockData {
		cfg.Upstream.MockData = true
		cfg.Dashboard.UseMockData = true
	}

	log.Printf("env=%s upstream=%s mock=%t dashboard=%s", cfg.Environment, cfg.Upstream.BaseURL, cfg.Upstream.MockData, cfg.Dashboard.BaseURL)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Blocks until SIGINT/SIGTERM or a server error.
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

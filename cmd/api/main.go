// Package main runs the course site API: learner identity and paid-access
// gating, the purchase webhook, admin-mode editing of the draft slots and
// publishing of the rendered site data.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/server"
	"github.com/coursecms/coursesite/internal/utils"
)

// Set through -ldflags at release time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	checkOnly := flag.Bool("check", false, "Validate the configuration, print a summary and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("coursesite api %s (commit %s, built %s)\n", version, commit, buildDate)
		return
	}

	// A missing .env is normal in deployed environments
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if version != "dev" {
		cfg.App.Version = version
	}

	if *checkOnly {
		printSummary(cfg)
		return
	}

	utils.InitLogger(cfg)
	utils.InitValidator()

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("drafts_backend", cfg.Drafts.Backend).
		Bool("publishing", cfg.GitHub.IsConfigured()).
		Msg("Starting course site API")

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	srv.SetupMaintenanceTasks()

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// printSummary lists what the configuration enables without printing secrets.
func printSummary(cfg *config.AppConfig) {
	fmt.Printf("environment:     %s\n", cfg.App.Environment)
	fmt.Printf("database:        %s %s:%d/%s\n", cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	fmt.Printf("listen:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("drafts backend:  %s\n", cfg.Drafts.Backend)
	fmt.Printf("publishing:      %t\n", cfg.GitHub.IsConfigured())
	fmt.Printf("checkout:        %t\n", cfg.Purchase.ProductURL != "")
	fmt.Printf("purchase hook:   %t\n", cfg.Purchase.ProductID != "")
	fmt.Printf("admin code set:  %t\n", cfg.Admin.AccessCode != "")
}

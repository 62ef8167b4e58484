package main

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-mapping-keeper/internal/config"
	"github.com/MKhiriev/go-mapping-keeper/internal/crypto"
	handler "github.com/MKhiriev/go-mapping-keeper/internal/handler/http"
	"github.com/MKhiriev/go-mapping-keeper/internal/logger"
	"github.com/MKhiriev/go-mapping-keeper/internal/server"
	"github.com/MKhiriev/go-mapping-keeper/internal/store"
	"github.com/MKhiriev/go-mapping-keeper/internal/utils"
	"github.com/MKhiriev/go-mapping-keeper/internal/workers"
	"github.com/MKhiriev/go-mapping-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("mapping-server", config.DefaultLogLevel).Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewLogger("mapping-server", cfg.App.LogLevel)

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	repo := store.NewMappingRepository(db, log)
	tree, err := repo.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading mappings")
	}
	log.Info().Int("mappings", tree.Len()).Msg("mappings loaded")

	checksum, err := utils.JarChecksum(cfg.App.JarPath)
	if err != nil {
		log.Fatal().Err(err).Str("jar", cfg.App.JarPath).Msg("error hashing jar")
	}
	log.Info().Str("checksum", checksum.String()).Msg("jar hashed")

	verifier, err := crypto.NewPasswordVerifier(cfg.App.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("error preparing password verifier")
	}

	// bind here so a taken port stops startup
	listener, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		log.Fatal().Err(err).Str("address", cfg.Server.Address).Msg("error binding mapping server")
	}

	mappings := server.NewMappingServer(tree, checksum, verifier, repo, cfg.Server, log)

	version := buildVersion
	if cfg.App.Version != "" {
		version = cfg.App.Version
	}
	admin := handler.NewHandler(mappings, verifier, handler.AuthSettings{
		SignKey:  cfg.App.TokenSignKey,
		Issuer:   cfg.App.TokenIssuer,
		Duration: cfg.App.TokenDuration,
	}, models.NewAppBuildInfo(version, buildDate, buildCommit), log)

	srv, err := server.NewServer(mappings, listener, admin.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, stopWorkers := context.WithCancel(ctx)
	background := workers.NewWorkers(workers.NewAutosaveWorker(mappings, cfg.Workers, log))
	background.Run(workersCtx)

	srv.RunServer()

	stopWorkers()
	background.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

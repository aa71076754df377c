package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/lifestyle-cms-backend/api"
	"github.com/rpupo63/lifestyle-cms-backend/config"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var awsCfg aws.Config
	if cfg.NeedsAWS() {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading AWS configuration")
		}
		if cfg.DatabaseURLSSMParameter != "" {
			if err := config.ResolveSecrets(ctx, cfg, ssm.NewFromConfig(awsCfg)); err != nil {
				log.Fatal().Err(err).Msg("Error resolving secrets")
			}
		}
	}

	log.Info().Str("dbType", cfg.DBType).Msg("Connecting to database...")
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if cfg.GenerateModels {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if cfg.GenerateColumnReport {
		fmt.Println("Generating column mismatch report...")
		models.PrintColumnMismatchReport(models.GenerateColumnMismatchReport(db))
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)
	resolver := newResolver(cfg, awsCfg)
	svc := services.New(currentDB, resolver)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, svc, resolver, currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// setupLogging configures the global zerolog logger: console output in
// development, JSON in production, level from LOG_LEVEL.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// newResolver builds the media resolver. Bucket paths use the public base URL
// when one is configured and presigned S3 URLs otherwise.
func newResolver(cfg *config.Config, awsCfg aws.Config) *media.Resolver {
	var opts []media.ResolverOption
	switch {
	case cfg.Storage.PublicURL != "":
		opts = append(opts, media.WithPublicBaseURL(cfg.Storage.PublicURL))
	case cfg.Storage.Bucket != "":
		presigner := media.NewS3Presigner(awsCfg, cfg.Storage.Endpoint)
		opts = append(opts, media.WithPresigner(presigner, cfg.Storage.Bucket, cfg.PresignTTL()))
	}
	return media.NewResolver(cfg.PlaceholderImageURL, opts...)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

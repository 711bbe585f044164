package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-records-api/internal/config"
	"github.com/employee-records-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/employee-records-api/internal/infrastructure/jwt"
	"github.com/employee-records-api/internal/infrastructure/notify"
	"github.com/employee-records-api/internal/infrastructure/pinstore"
	s3infra "github.com/employee-records-api/internal/infrastructure/s3"
	"github.com/employee-records-api/internal/infrastructure/smtp"
	"github.com/employee-records-api/internal/infrastructure/sns"
	transporthttp "github.com/employee-records-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if cfg.AuthSecretKey == "" {
		if cfg.AppEnv != "development" {
			log.Fatal("AUTH_SECRET_KEY must be set outside development")
		}
		log.Println("WARN: AUTH_SECRET_KEY not set, using a development-only key")
		cfg.AuthSecretKey = "dev-only-secret-key-change-me"
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg.AuthSecretKey, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// PIN delivery: email via SMTP, SMS via SNS (optional — graceful fallback).
	mailer := smtp.NewMailer(cfg)
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		EmployeeRepo: dynamo.NewEmployeeRepo(dynamoClient, cfg.DynamoTables.Employees),
		FileRepo:     dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		S3Store:      s3Store,
		PinStore:     pinstore.New(cfg.PinTTL),
		Notifier:     notify.New(mailer, smsSender),
		JWTProvider:  jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

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

	"github.com/joho/godotenv"
	"github.com/social-verify-api/internal/application/verification"
	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/infrastructure/dynamo"
	"github.com/social-verify-api/internal/infrastructure/flare"
	jwtinfra "github.com/social-verify-api/internal/infrastructure/jwt"
	"github.com/social-verify-api/internal/infrastructure/memory"
	"github.com/social-verify-api/internal/infrastructure/oauth"
	s3infra "github.com/social-verify-api/internal/infrastructure/s3"
	"github.com/social-verify-api/internal/infrastructure/sns"
	"github.com/social-verify-api/internal/infrastructure/twitter"
	transporthttp "github.com/social-verify-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	deps := verification.Deps{
		Social:           twitter.NewClient(cfg),
		OAuth:            oauth.NewClient(cfg),
		Attester:         flare.NewClient(cfg),
		ChallengeTTL:     cfg.ChallengeTTL,
		MaxAttempts:      cfg.MaxAttempts,
		RequiredHashtags: cfg.RequiredHashtags,
	}

	// Durable stores when AWS is reachable, in-memory fallback otherwise.
	// Verification attempts are ephemeral by design, so the fallback loses
	// nothing that matters across restarts.
	if cfg.AWSAccessKeyID != "" || cfg.AWSEndpointURL != "" {
		dynamoClient := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)
		deps.Challenges = dynamo.NewChallengeRepo(dynamoClient, cfg.DynamoTables.Challenges)
		deps.OAuthStates = dynamo.NewOAuthStateRepo(dynamoClient, cfg.DynamoTables.OAuthStates)
		deps.Verifications = dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications)

		s3Client := s3infra.NewClient(cfg)
		deps.Archive = s3infra.NewArchive(s3Client, cfg.S3BucketName)
	} else {
		log.Println("WARN: AWS not configured, using in-memory stores")
		deps.Challenges = memory.NewChallengeStore()
		deps.OAuthStates = memory.NewOAuthStateStore()
		deps.Verifications = memory.NewVerificationStore()
	}

	// SNS event publisher (optional — graceful fallback).
	if publisher, err := sns.NewPublisher(cfg); err == nil {
		deps.Publisher = publisher
	} else {
		log.Printf("WARN: SNS publisher not available: %v", err)
	}

	// JWT provider (optional — admin surface disabled if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		VerificationSvc: verification.NewService(deps),
		JWTProvider:     jwtProvider,
	})

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

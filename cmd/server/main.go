package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/contest"
	"github.com/codeclash/backend/http"
	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/rating"
)

func main() {
	godotenv.Load()

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "codeclash.toml"
	}
	cfg, err := conf.Read(cfgPath)
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	ratingRepo, judgeSrvc := buildCollaborators(cfg)

	ratingSrvc := rating.NewRatingSrvc(ratingRepo)
	registry := contest.NewInMemRegistry()
	coordinator := contest.NewCoordinator(registry, ratingSrvc, judgeSrvc)

	httpServer := http.NewHttpServer(coordinator, ratingSrvc,
		[]byte(jwtKey), cfg.Http.AllowedOrigins)

	log.Printf("Starting server on %s", cfg.Http.Address)
	err = httpServer.Start(cfg.Http.Address)
	log.Printf("Server stopped with error: %v", err)
}

// buildCollaborators wires the persistence and judge collaborators. With
// LOCAL_MODE=1 both are replaced by in-process fakes so the server runs
// without AWS credentials.
func buildCollaborators(cfg conf.Config) (rating.Repo, judge.Judge) {
	if os.Getenv("LOCAL_MODE") == "1" {
		slog.Info("running in local mode, using in-memory collaborators")
		return rating.NewInMemRatingRepo(), judge.NewStubJudge()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Dynamo.Region))
	if err != nil {
		slog.Error("unable to load AWS SDK config", "error", err)
		os.Exit(1)
	}

	ddbClient := dynamodb.NewFromConfig(awsCfg)
	ratingRepo := rating.NewDynamoDbRatingsTable(ddbClient, cfg.Dynamo.RatingsTable)

	if cfg.Judge.SubmQueueUrl == "" || cfg.Judge.RespQueueUrl == "" {
		slog.Error("judge queue URLs are not configured")
		os.Exit(1)
	}
	sqsClient := sqs.NewFromConfig(awsCfg)
	judgeSrvc := judge.NewSqsJudge(sqsClient,
		cfg.Judge.SubmQueueUrl, cfg.Judge.RespQueueUrl,
		time.Duration(cfg.Judge.TimeoutSecs)*time.Second)

	return ratingRepo, judgeSrvc
}

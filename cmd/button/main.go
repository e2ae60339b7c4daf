package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"philcali.me/button/internal/app"
	"philcali.me/button/internal/config"
	"philcali.me/button/internal/loggers"
)

func NewApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	logger, err := loggers.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	button, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Errorf("Failed to create aws clients: %v", err)
		logger.Sync()
		return nil, err
	}
	return button, nil
}

func main() {
	button, err := NewApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to start button handler: %v", err)
	}
	defer button.Logger.Sync()
	lambda.Start(button.HandleRequest)
}

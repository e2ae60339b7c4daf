package app

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/button/internal/config"
	"philcali.me/button/internal/data"
	"philcali.me/button/internal/dynamodb/presses"
	"philcali.me/button/internal/dynamodb/token"
	"philcali.me/button/internal/events"
	"philcali.me/button/internal/loggers"
	"philcali.me/button/internal/sns/services"
)

// App holds the clients built once per cold start. Presses is nil when no
// table is configured.
type App struct {
	Config  *config.Config
	Handler *events.ClickHandler
	Presses data.PressRepository
	Logger  loggers.Logger
}

func New(ctx context.Context, cfg *config.Config, logger loggers.Logger) (*App, error) {
	awsCfg, err := config.AwsConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClients(cfg, sns.NewFromConfig(awsCfg), dynamodb.NewFromConfig(awsCfg), logger), nil
}

func NewWithClients(cfg *config.Config, snsClient services.SNSAPI, ddbClient presses.DynamoDBAPI, logger loggers.Logger) *App {
	var pressData data.PressRepository
	if len(cfg.TableName) > 0 {
		pressData = presses.NewPressService(cfg.TableName, ddbClient, token.NewGCM())
	}
	service := services.NewNotificationSNSService(snsClient, cfg.MaxSubscriptionPages, logger)
	handler := events.NewClickHandler(service, cfg.TopicName, events.Recipient{
		Endpoint: cfg.RecipientEndpoint,
		Protocol: cfg.Protocol,
	}, pressData, logger)
	return &App{
		Config:  cfg,
		Handler: handler,
		Presses: pressData,
		Logger:  logger,
	}
}

func (app *App) HandleRequest(ctx context.Context, event data.ClickEvent) (*data.PressResult, error) {
	return app.Handler.Handle(ctx, event)
}

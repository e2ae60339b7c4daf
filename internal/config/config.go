package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator"
	"philcali.me/button/internal/exceptions"
)

const (
	Env_RecipientEndpoint    = "RECIPIENT_ENDPOINT"
	Env_SubscriptionProtocol = "SUBSCRIPTION_PROTOCOL"
	Env_TopicName            = "TOPIC_NAME"
	Env_MaxSubscriptionPages = "MAX_SUBSCRIPTION_PAGES"
	Env_TableName            = "TABLE_NAME"
	Env_LogLevel             = "LOG_LEVEL"
	Env_AwsRegion            = "AWS_REGION"
	Env_AwsEndpoint          = "AWS_ENDPOINT"
)

const (
	DefaultTopicName            = "aws-iot-button-sns-topic"
	DefaultProtocol             = "email"
	DefaultMaxSubscriptionPages = 100
)

const DefaultRpcWaitTime = 30 * time.Second

// Config is read once per cold start and never mutated afterwards.
type Config struct {
	RecipientEndpoint    string `validate:"required"`
	Protocol             string `validate:"required,oneof=email email-json sms http https sqs lambda application firehose"`
	TopicName            string `validate:"required,max=256"`
	MaxSubscriptionPages int    `validate:"min=1"`
	TableName            string
	LogLevel             string
	AwsRegion            string
	AwsEndpoint          string
}

func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		RecipientEndpoint:    getenv(Env_RecipientEndpoint),
		Protocol:             valueOr(getenv(Env_SubscriptionProtocol), DefaultProtocol),
		TopicName:            valueOr(getenv(Env_TopicName), DefaultTopicName),
		MaxSubscriptionPages: DefaultMaxSubscriptionPages,
		TableName:            getenv(Env_TableName),
		LogLevel:             getenv(Env_LogLevel),
		AwsRegion:            getenv(Env_AwsRegion),
		AwsEndpoint:          getenv(Env_AwsEndpoint),
	}
	if pages := getenv(Env_MaxSubscriptionPages); len(pages) > 0 {
		parsed, err := strconv.Atoi(pages)
		if err != nil {
			return nil, exceptions.InvalidInput(fmt.Sprintf("%s must be a number: %s", Env_MaxSubscriptionPages, pages))
		}
		cfg.MaxSubscriptionPages = parsed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func FromEnv() (*Config, error) {
	return Load(os.Getenv)
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return exceptions.InvalidInput(fmt.Sprintf("invalid configuration: %v", err))
	}
	if c.Protocol == "email" || c.Protocol == "email-json" {
		if err := validate.Var(c.RecipientEndpoint, "email"); err != nil {
			return exceptions.InvalidInput(fmt.Sprintf("%s is not an email address: %s", Env_RecipientEndpoint, c.RecipientEndpoint))
		}
	}
	return nil
}

// AwsConfig loads the default AWS configuration, pointing every client at
// AwsEndpoint when one is set.
func AwsConfig(ctx context.Context, c *Config) (aws.Config, error) {
	var opts []func(*awsConfig.LoadOptions) error
	if len(c.AwsRegion) > 0 {
		opts = append(opts, awsConfig.WithRegion(c.AwsRegion))
	}
	if len(c.AwsEndpoint) > 0 {
		endpointResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           c.AwsEndpoint,
				SigningRegion: valueOr(c.AwsRegion, region),
			}, nil
		})
		opts = append(opts, awsConfig.WithEndpointResolverWithOptions(endpointResolver))
	}

	httpCtx, httpCancel := context.WithTimeout(ctx, DefaultRpcWaitTime)
	defer httpCancel()

	return awsConfig.LoadDefaultConfig(httpCtx, opts...)
}

func valueOr(value string, def string) string {
	if len(value) > 0 {
		return value
	}
	return def
}

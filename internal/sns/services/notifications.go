package services

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"philcali.me/button/internal/data"
	"philcali.me/button/internal/exceptions"
	"philcali.me/button/internal/loggers"
	"philcali.me/button/internal/notifications"
)

const DefaultMaxPages = 100

// SNSAPI is the subset of *sns.Client the notification service calls.
type SNSAPI interface {
	CreateTopic(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type NotificationSNSService struct {
	Sns      SNSAPI
	MaxPages int
	Logger   loggers.Logger
}

func NewNotificationSNSService(client SNSAPI, maxPages int, logger loggers.Logger) *NotificationSNSService {
	return &NotificationSNSService{
		Sns:      client,
		MaxPages: maxPages,
		Logger:   logger,
	}
}

func (n *NotificationSNSService) maxPages() int {
	if n.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return n.MaxPages
}

// EnsureTopic relies on CreateTopic returning the existing arn for a name
// that already exists.
func (n *NotificationSNSService) EnsureTopic(ctx context.Context, name string) (string, error) {
	output, err := n.Sns.CreateTopic(ctx, &sns.CreateTopicInput{
		Name: aws.String(name),
	})
	if err != nil {
		n.Logger.Errorf("Creating topic %s failed: %v", name, err)
		return "", exceptions.TopicCreationFailed(name, err)
	}
	if output.TopicArn == nil {
		return "", exceptions.TopicCreationFailed(name, errors.New("no topic arn returned"))
	}
	n.Logger.Infof("Created topic: %s", *output.TopicArn)
	return *output.TopicArn, nil
}

func (n *NotificationSNSService) FindSubscription(ctx context.Context, topicArn string, endpoint string, protocol string) (*notifications.Subscription, error) {
	var nextToken *string
	seen := make(map[string]bool)
	for page := 0; page < n.maxPages(); page++ {
		output, err := n.Sns.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{
			TopicArn:  aws.String(topicArn),
			NextToken: nextToken,
		})
		if err != nil {
			n.Logger.Errorf("Error listing subscriptions for %s: %v", topicArn, err)
			return nil, exceptions.LookupFailed(topicArn, endpoint, err)
		}
		for _, sub := range output.Subscriptions {
			if aws.ToString(sub.Protocol) == protocol && aws.ToString(sub.Endpoint) == endpoint {
				return &notifications.Subscription{
					SubscriptionArn: aws.ToString(sub.SubscriptionArn),
					TopicArn:        topicArn,
					Protocol:        protocol,
					Endpoint:        endpoint,
				}, nil
			}
		}
		if len(aws.ToString(output.NextToken)) == 0 {
			return nil, nil
		}
		if seen[*output.NextToken] {
			n.Logger.Errorf("Subscription listing for %s repeated cursor after %d pages", topicArn, page+1)
			return nil, exceptions.LookupFailed(topicArn, endpoint, exceptions.ErrCursorCycle)
		}
		seen[*output.NextToken] = true
		nextToken = output.NextToken
	}
	n.Logger.Errorf("Subscription listing for %s did not finish within %d pages", topicArn, n.maxPages())
	return nil, exceptions.LookupFailed(topicArn, endpoint, exceptions.ErrPageLimitExceeded)
}

// EnsureSubscription counts a pending subscription as present.
func (n *NotificationSNSService) EnsureSubscription(ctx context.Context, topicArn string, endpoint string, protocol string) (*notifications.SubscribeOutput, error) {
	existing, err := n.FindSubscription(ctx, topicArn, endpoint, protocol)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Pending() {
			n.Logger.Warnf("Subscription for %s on %s is still pending confirmation", endpoint, topicArn)
		}
		return &notifications.SubscribeOutput{
			Subscription: *existing,
		}, nil
	}

	output, err := n.Sns.Subscribe(ctx, &sns.SubscribeInput{
		Endpoint:              aws.String(endpoint),
		Protocol:              aws.String(protocol),
		TopicArn:              aws.String(topicArn),
		ReturnSubscriptionArn: true,
	})
	if err != nil {
		n.Logger.Errorf("Error setting up %s subscription: %v", protocol, err)
		return nil, exceptions.SubscriptionCreateFailed(topicArn, protocol, endpoint, err)
	}
	n.Logger.Infof("Subscribed %s to %s.", endpoint, topicArn)
	return &notifications.SubscribeOutput{
		Subscription: notifications.Subscription{
			SubscriptionArn: aws.ToString(output.SubscriptionArn),
			TopicArn:        topicArn,
			Protocol:        protocol,
			Endpoint:        endpoint,
		},
		Created: true,
	}, nil
}

func (n *NotificationSNSService) Publish(ctx context.Context, topicArn string, message data.NotificationMessage) (string, error) {
	n.Logger.Infof("Publishing to topic %s", topicArn)
	output, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicArn),
		Subject:  aws.String(message.Subject),
		Message:  aws.String(message.Body),
	})
	if err != nil {
		n.Logger.Errorf("Publishing to %s failed: %v", topicArn, err)
		return "", exceptions.PublishFailed(topicArn, err)
	}
	if output.MessageId == nil {
		return "", exceptions.PublishFailed(topicArn, errors.New("no message id returned"))
	}
	return *output.MessageId, nil
}

package notifications

import (
	"context"

	"philcali.me/button/internal/data"
)

// PendingConfirmation is the subscription arn SNS reports for an endpoint
// that has not confirmed yet.
const PendingConfirmation = "PendingConfirmation"

type Subscription struct {
	SubscriptionArn string
	TopicArn        string
	Protocol        string
	Endpoint        string
}

func (s Subscription) Pending() bool {
	return s.SubscriptionArn == PendingConfirmation
}

type SubscribeOutput struct {
	Subscription Subscription
	Created      bool
}

type TopicProvisioner interface {
	EnsureTopic(ctx context.Context, name string) (string, error)
}

type SubscriptionManager interface {
	// FindSubscription returns nil without an error when no page holds the endpoint.
	FindSubscription(ctx context.Context, topicArn string, endpoint string, protocol string) (*Subscription, error)
	EnsureSubscription(ctx context.Context, topicArn string, endpoint string, protocol string) (*SubscribeOutput, error)
}

type Dispatcher interface {
	Publish(ctx context.Context, topicArn string, message data.NotificationMessage) (string, error)
}

type NotificationService interface {
	TopicProvisioner
	SubscriptionManager
	Dispatcher
}

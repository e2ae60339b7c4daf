package events

import (
	"context"
	"time"

	"philcali.me/button/internal/data"
	"philcali.me/button/internal/loggers"
	"philcali.me/button/internal/messages"
	"philcali.me/button/internal/notifications"
)

var _ EventHandler = (*ClickHandler)(nil)

// ClickHandler provisions and dispatches one press. A nil Presses disables
// press history.
type ClickHandler struct {
	Topics        notifications.TopicProvisioner
	Subscriptions notifications.SubscriptionManager
	Dispatcher    notifications.Dispatcher
	Presses       data.PressRepository
	TopicName     string
	Recipient     Recipient
	Clock         Clock
	Logger        loggers.Logger
}

func NewClickHandler(service notifications.NotificationService, topicName string, recipient Recipient, presses data.PressRepository, logger loggers.Logger) *ClickHandler {
	return &ClickHandler{
		Topics:        service,
		Subscriptions: service,
		Dispatcher:    service,
		Presses:       presses,
		TopicName:     topicName,
		Recipient:     recipient,
		Clock:         time.Now,
		Logger:        logger,
	}
}

// Handle provisions the topic and subscription, then publishes the press.
// The first failing step's error is returned as-is and later steps are skipped.
func (ch *ClickHandler) Handle(ctx context.Context, event data.ClickEvent) (*data.PressResult, error) {
	ch.Logger.Infow("Received event", "clickType", event.ClickType, "serialNumber", event.SerialNumber)

	topicArn, err := ch.Topics.EnsureTopic(ctx, ch.TopicName)
	if err != nil {
		return nil, err
	}

	subscription, err := ch.Subscriptions.EnsureSubscription(ctx, topicArn, ch.Recipient.Endpoint, ch.Recipient.Protocol)
	if err != nil {
		return nil, err
	}
	ch.Logger.Infof("Topic setup complete.")

	message := messages.Compose(event, ch.Clock())
	messageId, err := ch.Dispatcher.Publish(ctx, topicArn, message)
	if err != nil {
		return nil, err
	}

	result := &data.PressResult{
		TopicArn:        topicArn,
		SubscriptionArn: subscription.Subscription.SubscriptionArn,
		MessageId:       messageId,
		Subscribed:      subscription.Created,
	}
	ch.record(ctx, event, result)
	return result, nil
}

// record never fails the invocation; the message is already out.
func (ch *ClickHandler) record(ctx context.Context, event data.ClickEvent, result *data.PressResult) {
	if ch.Presses == nil {
		return
	}
	press, err := ch.Presses.Create(ctx, data.PressInputDTO{
		Event:     event,
		TopicArn:  result.TopicArn,
		MessageId: result.MessageId,
	})
	if err != nil {
		ch.Logger.Errorf("Failed to record press for %s (message %s): %v", event.SerialNumber, result.MessageId, err)
		return
	}
	ch.Logger.Debugf("Recorded press %s", press.Id)
}

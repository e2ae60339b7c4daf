package events

import (
	"context"
	"time"

	"philcali.me/button/internal/data"
)

type Clock func() time.Time

// Recipient is the single endpoint every press is delivered to.
type Recipient struct {
	Endpoint string
	Protocol string
}

type EventHandler interface {
	Handle(ctx context.Context, event data.ClickEvent) (*data.PressResult, error)
}

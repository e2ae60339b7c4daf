package exceptions

import (
	"errors"
	"fmt"
)

var (
	ErrPageLimitExceeded = errors.New("subscription listing exceeded the page limit")
	ErrCursorCycle       = errors.New("subscription listing returned a cursor it already returned")
)

// StepError is returned by every provisioning and dispatch step so callers
// can tell which step of an invocation failed.
type StepError interface {
	Step() string
	Error() string
	Unwrap() error
}

type LookupError struct {
	TopicArn string
	Endpoint string
	Cause    error
}

func (le *LookupError) Error() string {
	return fmt.Sprintf("Failed to look up subscription for %s on %s: %v", le.Endpoint, le.TopicArn, le.Cause)
}

func (le *LookupError) Unwrap() error {
	return le.Cause
}

func (le *LookupError) Step() string {
	return "ListSubscriptionsByTopic"
}

func LookupFailed(topicArn string, endpoint string, cause error) *LookupError {
	return &LookupError{
		TopicArn: topicArn,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

type TopicCreationError struct {
	Name  string
	Cause error
}

func (te *TopicCreationError) Error() string {
	return fmt.Sprintf("Failed to create topic %s: %v", te.Name, te.Cause)
}

func (te *TopicCreationError) Unwrap() error {
	return te.Cause
}

func (te *TopicCreationError) Step() string {
	return "CreateTopic"
}

func TopicCreationFailed(name string, cause error) *TopicCreationError {
	return &TopicCreationError{
		Name:  name,
		Cause: cause,
	}
}

type SubscriptionCreateError struct {
	TopicArn string
	Protocol string
	Endpoint string
	Cause    error
}

func (se *SubscriptionCreateError) Error() string {
	return fmt.Sprintf("Failed to subscribe %s (%s) to %s: %v", se.Endpoint, se.Protocol, se.TopicArn, se.Cause)
}

func (se *SubscriptionCreateError) Unwrap() error {
	return se.Cause
}

func (se *SubscriptionCreateError) Step() string {
	return "Subscribe"
}

func SubscriptionCreateFailed(topicArn string, protocol string, endpoint string, cause error) *SubscriptionCreateError {
	return &SubscriptionCreateError{
		TopicArn: topicArn,
		Protocol: protocol,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

type PublishError struct {
	TopicArn string
	Cause    error
}

func (pe *PublishError) Error() string {
	return fmt.Sprintf("Failed to publish to %s: %v", pe.TopicArn, pe.Cause)
}

func (pe *PublishError) Unwrap() error {
	return pe.Cause
}

func (pe *PublishError) Step() string {
	return "Publish"
}

func PublishFailed(topicArn string, cause error) *PublishError {
	return &PublishError{
		TopicArn: topicArn,
		Cause:    cause,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

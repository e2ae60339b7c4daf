package test

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

const (
	OpCreateTopic              = "CreateTopic"
	OpListSubscriptionsByTopic = "ListSubscriptionsByTopic"
	OpSubscribe                = "Subscribe"
	OpPublish                  = "Publish"
)

const FakeAccount = "012345678912"

// FakeSNS keeps topics and subscriptions in memory and pages subscription
// listings PageSize entries at a time.
type FakeSNS struct {
	PageSize int

	// Errors fails every call of the named operation.
	Errors map[string]error

	// ListErrorOnPage fails the Nth ListSubscriptionsByTopic call, counting from 1.
	ListErrorOnPage int

	// LoopCursor, when set, is returned as the next token of every page.
	LoopCursor *string

	mu            sync.Mutex
	topics        map[string]string
	subscriptions map[string][]types.Subscription
	published     []sns.PublishInput
	calls         map[string]int
}

func NewFakeSNS() *FakeSNS {
	return &FakeSNS{
		PageSize:      100,
		Errors:        make(map[string]error),
		topics:        make(map[string]string),
		subscriptions: make(map[string][]types.Subscription),
		calls:         make(map[string]int),
	}
}

func TopicArn(name string) string {
	return fmt.Sprintf("arn:aws:sns:us-east-1:%s:%s", FakeAccount, name)
}

func (f *FakeSNS) record(ctx context.Context, op string) error {
	f.calls[op]++
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.Errors[op]
}

func (f *FakeSNS) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeSNS) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
}

func (f *FakeSNS) Topics() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	topics := make(map[string]string, len(f.topics))
	for name, arn := range f.topics {
		topics[name] = arn
	}
	return topics
}

func (f *FakeSNS) Subscriptions(topicArn string) []types.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Subscription(nil), f.subscriptions[topicArn]...)
}

func (f *FakeSNS) Published() []sns.PublishInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sns.PublishInput(nil), f.published...)
}

// AddSubscription seeds a subscription without counting a Subscribe call.
func (f *FakeSNS) AddSubscription(topicArn, protocol, endpoint, subscriptionArn string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions[topicArn] = append(f.subscriptions[topicArn], types.Subscription{
		TopicArn:        aws.String(topicArn),
		Protocol:        aws.String(protocol),
		Endpoint:        aws.String(endpoint),
		SubscriptionArn: aws.String(subscriptionArn),
		Owner:           aws.String(FakeAccount),
	})
}

func (f *FakeSNS) CreateTopic(ctx context.Context, params *sns.CreateTopicInput, optFns ...func(*sns.Options)) (*sns.CreateTopicOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, OpCreateTopic); err != nil {
		return nil, err
	}
	name := aws.ToString(params.Name)
	arn, ok := f.topics[name]
	if !ok {
		arn = TopicArn(name)
		f.topics[name] = arn
	}
	return &sns.CreateTopicOutput{TopicArn: aws.String(arn)}, nil
}

func (f *FakeSNS) ListSubscriptionsByTopic(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, OpListSubscriptionsByTopic); err != nil {
		return nil, err
	}
	if f.ListErrorOnPage > 0 && f.calls[OpListSubscriptionsByTopic] == f.ListErrorOnPage {
		return nil, fmt.Errorf("InternalError: page %d unavailable", f.ListErrorOnPage)
	}
	start := 0
	if token := aws.ToString(params.NextToken); len(token) > 0 && f.LoopCursor == nil {
		parsed, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("InvalidParameter: NextToken %s", token)
		}
		start = parsed
	}
	subs := f.subscriptions[aws.ToString(params.TopicArn)]
	if start > len(subs) {
		start = len(subs)
	}
	end := start + f.PageSize
	output := &sns.ListSubscriptionsByTopicOutput{}
	if end < len(subs) {
		output.NextToken = aws.String(strconv.Itoa(end))
	} else {
		end = len(subs)
	}
	output.Subscriptions = append([]types.Subscription(nil), subs[start:end]...)
	if f.LoopCursor != nil {
		output.NextToken = f.LoopCursor
	}
	return output, nil
}

func (f *FakeSNS) Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, OpSubscribe); err != nil {
		return nil, err
	}
	topicArn := aws.ToString(params.TopicArn)
	subscriptionArn := fmt.Sprintf("%s:%s", topicArn, uuid.NewString())
	f.subscriptions[topicArn] = append(f.subscriptions[topicArn], types.Subscription{
		TopicArn:        params.TopicArn,
		Protocol:        params.Protocol,
		Endpoint:        params.Endpoint,
		SubscriptionArn: aws.String(subscriptionArn),
		Owner:           aws.String(FakeAccount),
	})
	return &sns.SubscribeOutput{SubscriptionArn: aws.String(subscriptionArn)}, nil
}

func (f *FakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx, OpPublish); err != nil {
		return nil, err
	}
	f.published = append(f.published, *params)
	return &sns.PublishOutput{MessageId: aws.String(uuid.NewString())}, nil
}

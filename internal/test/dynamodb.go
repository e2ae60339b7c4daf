package test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// FakeDynamoDB is a single-table store keyed by string PK and SK. Query
// supports the one-value PK key conditions the repositories build.
type FakeDynamoDB struct {
	PutError   error
	QueryError error

	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue
	puts  int
}

func NewFakeDynamoDB() *FakeDynamoDB {
	return &FakeDynamoDB{
		items: make(map[string]map[string]map[string]types.AttributeValue),
	}
}

func stringValue(item map[string]types.AttributeValue, field string) (string, error) {
	value, ok := item[field].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("ValidationException: %s must be a string", field)
	}
	return value.Value, nil
}

// ConditionFailed wraps a conditional check failure the way the SDK client
// returns it.
func ConditionFailed(operation string) error {
	return &smithy.OperationError{
		ServiceID:     "DynamoDB",
		OperationName: operation,
		Err:           &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")},
	}
}

func (f *FakeDynamoDB) PutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func (f *FakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.PutError != nil {
		return nil, f.PutError
	}
	pk, err := stringValue(params.Item, "PK")
	if err != nil {
		return nil, err
	}
	sk, err := stringValue(params.Item, "SK")
	if err != nil {
		return nil, err
	}
	partition, ok := f.items[pk]
	if !ok {
		partition = make(map[string]map[string]types.AttributeValue)
		f.items[pk] = partition
	}
	if _, exists := partition[sk]; exists && params.ConditionExpression != nil {
		return nil, ConditionFailed("PutItem")
	}
	partition[sk] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *FakeDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.QueryError != nil {
		return nil, f.QueryError
	}
	if len(params.ExpressionAttributeValues) != 1 {
		return nil, errors.New("ValidationException: expected a single key condition value")
	}
	var pk string
	for _, value := range params.ExpressionAttributeValues {
		s, ok := value.(*types.AttributeValueMemberS)
		if !ok {
			return nil, errors.New("ValidationException: PK must be a string")
		}
		pk = s.Value
	}
	partition := f.items[pk]
	keys := make([]string, 0, len(partition))
	for sk := range partition {
		keys = append(keys, sk)
	}
	forward := params.ScanIndexForward == nil || *params.ScanIndexForward
	sort.Slice(keys, func(i, j int) bool {
		if forward {
			return keys[i] < keys[j]
		}
		return keys[i] > keys[j]
	})
	if params.ExclusiveStartKey != nil {
		startSK, err := stringValue(params.ExclusiveStartKey, "SK")
		if err != nil {
			return nil, err
		}
		for i, sk := range keys {
			if sk == startSK {
				keys = keys[i+1:]
				break
			}
		}
	}
	output := &dynamodb.QueryOutput{}
	if params.Limit != nil && int(*params.Limit) < len(keys) {
		keys = keys[:*params.Limit]
		last := partition[keys[len(keys)-1]]
		output.LastEvaluatedKey = map[string]types.AttributeValue{
			"PK": last["PK"],
			"SK": last["SK"],
		}
	}
	for _, sk := range keys {
		output.Items = append(output.Items, partition[sk])
	}
	output.Count = int32(len(output.Items))
	return output, nil
}

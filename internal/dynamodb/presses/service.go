package presses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/button/internal/data"
	"philcali.me/button/internal/dynamodb/token"
	"philcali.me/button/internal/exceptions"
)

// SortKeyLayout is fixed width so sort keys order by time.
const SortKeyLayout = "2006-01-02T15:04:05.000000000Z"

var ErrPressExists = errors.New("press already recorded")

type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type PressDynamoDBService struct {
	DynamoDB       DynamoDBAPI
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Now            func() time.Time
}

func NewPressService(tableName string, client DynamoDBAPI, marshaler token.TokenMarshaler) data.PressRepository {
	return &PressDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Now:            time.Now,
	}
}

func PrimaryKey(serialNumber string) string {
	return fmt.Sprintf("%s:Press", serialNumber)
}

func (ps *PressDynamoDBService) Create(ctx context.Context, input data.PressInputDTO) (data.PressDTO, error) {
	id := uuid.NewString()
	createTime := ps.Now().UTC()
	press := data.PressDTO{
		PK:             PrimaryKey(input.Event.SerialNumber),
		SK:             fmt.Sprintf("%s#%s", createTime.Format(SortKeyLayout), id),
		Id:             id,
		SerialNumber:   input.Event.SerialNumber,
		ClickType:      string(input.Event.ClickType),
		BatteryVoltage: input.Event.BatteryVoltage,
		TopicArn:       input.TopicArn,
		MessageId:      input.MessageId,
		CreateTime:     createTime,
	}
	item, err := attributevalue.MarshalMap(press)
	if err != nil {
		return press, err
	}
	expr, err := expression.NewBuilder().WithCondition(expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())).Build()
	if err != nil {
		return press, err
	}
	_, err = ps.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(ps.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return press, fmt.Errorf("%w: %s (%v)", ErrPressExists, press.SK, err)
		}
		return press, err
	}
	return press, nil
}

// List returns the newest presses first.
func (ps *PressDynamoDBService) List(ctx context.Context, serialNumber string, params data.QueryParams) (data.QueryResults[data.PressDTO], error) {
	if len(serialNumber) == 0 {
		return data.QueryResults[data.PressDTO]{}, exceptions.InvalidInput("a serial number is required to list presses")
	}
	keyEx := expression.Key("PK").Equal(expression.Value(PrimaryKey(serialNumber)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[data.PressDTO]{}, err
	}
	startKey, err := ps.TokenMarshaler.Unmarshal(serialNumber, params.NextToken)
	if err != nil {
		return data.QueryResults[data.PressDTO]{}, exceptions.InvalidInput(fmt.Sprintf("invalid next token: %v", err))
	}
	output, err := ps.DynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(ps.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return data.QueryResults[data.PressDTO]{}, err
	}
	var items []data.PressDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[data.PressDTO]{}, err
	}
	nextToken, err := ps.TokenMarshaler.Marshal(serialNumber, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.PressDTO]{}, err
	}
	return data.QueryResults[data.PressDTO]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

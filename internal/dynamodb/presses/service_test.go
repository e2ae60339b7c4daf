package presses

import (
	"context"
	"errors"
	"testing"
	"time"

	"philcali.me/button/internal/data"
	"philcali.me/button/internal/dynamodb/token"
	"philcali.me/button/internal/exceptions"
	"philcali.me/button/internal/test"
)

func NewTestPressService(t *testing.T, client *test.FakeDynamoDB) *PressDynamoDBService {
	start := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	ticks := 0
	return &PressDynamoDBService{
		DynamoDB:       client,
		TableName:      "ButtonPresses",
		TokenMarshaler: token.NewGCM(),
		Now: func() time.Time {
			ticks++
			return start.Add(time.Duration(ticks) * time.Minute)
		},
	}
}

func TestPresses(t *testing.T) {
	client := test.NewFakeDynamoDB()
	pressData := NewTestPressService(t, client)
	serialNumber := "G030JF053956LERW"

	t.Run("Create", func(t *testing.T) {
		for _, clickType := range []data.ClickType{data.ClickSingle, data.ClickDouble, data.ClickLong} {
			press, err := pressData.Create(context.Background(), data.PressInputDTO{
				Event: data.ClickEvent{
					SerialNumber:   serialNumber,
					BatteryVoltage: "1441mV",
					ClickType:      clickType,
				},
				TopicArn:  test.TopicArn("aws-iot-button-sns-topic"),
				MessageId: "message-" + string(clickType),
			})
			if err != nil {
				t.Fatalf("Failed to record press: %v", err)
			}
			if press.PK != PrimaryKey(serialNumber) {
				t.Errorf("Expected PK %s, but got %s", PrimaryKey(serialNumber), press.PK)
			}
			if press.Id == "" || press.ClickType != string(clickType) {
				t.Errorf("Press was not populated: %+v", press)
			}
		}
		if client.PutCount() != 3 {
			t.Errorf("Expected 3 puts, but got %d", client.PutCount())
		}
	})

	t.Run("List", func(t *testing.T) {
		first, err := pressData.List(context.Background(), serialNumber, data.QueryParams{Limit: 2})
		if err != nil {
			t.Fatalf("Failed to list presses: %v", err)
		}
		if len(first.Items) != 2 {
			t.Fatalf("Expected 2 presses, but got %d", len(first.Items))
		}
		if first.Items[0].ClickType != string(data.ClickLong) || first.Items[1].ClickType != string(data.ClickDouble) {
			t.Errorf("Expected newest presses first, but got %+v", first.Items)
		}
		if first.NextToken == nil {
			t.Fatalf("Expected a next token")
		}

		second, err := pressData.List(context.Background(), serialNumber, data.QueryParams{Limit: 2, NextToken: first.NextToken})
		if err != nil {
			t.Fatalf("Failed to list the second page: %v", err)
		}
		if len(second.Items) != 1 || second.Items[0].ClickType != string(data.ClickSingle) {
			t.Errorf("Expected the oldest press on page two, but got %+v", second.Items)
		}
		if second.NextToken != nil {
			t.Errorf("Expected no further pages, but got %s", second.NextToken)
		}
		if second.Items[0].MessageId != "message-SINGLE" || second.Items[0].BatteryVoltage != "1441mV" {
			t.Errorf("Press did not round trip: %+v", second.Items[0])
		}
	})

	t.Run("ListOtherSerialToken", func(t *testing.T) {
		first, err := pressData.List(context.Background(), serialNumber, data.QueryParams{Limit: 1})
		if err != nil {
			t.Fatalf("Failed to list presses: %v", err)
		}
		_, err = pressData.List(context.Background(), "G030JF000000OTHER", data.QueryParams{NextToken: first.NextToken})
		var invalid *exceptions.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected an InvalidInputError, but got %v", err)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		results, err := pressData.List(context.Background(), "G030JF000000EMPTY", data.QueryParams{})
		if err != nil {
			t.Fatalf("Failed to list presses: %v", err)
		}
		if len(results.Items) != 0 || results.NextToken != nil {
			t.Errorf("Expected no presses, but got %+v", results)
		}
	})

	t.Run("ListRequiresSerial", func(t *testing.T) {
		if _, err := pressData.List(context.Background(), "", data.QueryParams{}); err == nil {
			t.Fatalf("Expected an empty serial number to fail")
		}
	})

	t.Run("PutFailure", func(t *testing.T) {
		failing := test.NewFakeDynamoDB()
		failing.PutError = errors.New("ProvisionedThroughputExceededException")
		_, err := NewTestPressService(t, failing).Create(context.Background(), data.PressInputDTO{
			Event: data.ClickEvent{SerialNumber: serialNumber},
		})
		if err == nil {
			t.Fatalf("Expected the put failure to surface")
		}
		if errors.Is(err, ErrPressExists) {
			t.Errorf("Expected a throughput failure, but got %v", err)
		}
	})

	t.Run("PutConditionFailure", func(t *testing.T) {
		failing := test.NewFakeDynamoDB()
		failing.PutError = test.ConditionFailed("PutItem")
		_, err := NewTestPressService(t, failing).Create(context.Background(), data.PressInputDTO{
			Event: data.ClickEvent{SerialNumber: serialNumber},
		})
		if !errors.Is(err, ErrPressExists) {
			t.Fatalf("Expected ErrPressExists, but got %v", err)
		}
	})
}

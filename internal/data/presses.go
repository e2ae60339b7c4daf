package data

import (
	"context"
	"time"
)

type PressDTO struct {
	PK             string    `dynamodbav:"PK" json:"-"`
	SK             string    `dynamodbav:"SK" json:"-"`
	Id             string    `dynamodbav:"id" json:"id"`
	SerialNumber   string    `dynamodbav:"serialNumber" json:"serialNumber"`
	ClickType      string    `dynamodbav:"clickType" json:"clickType"`
	BatteryVoltage string    `dynamodbav:"batteryVoltage" json:"batteryVoltage"`
	TopicArn       string    `dynamodbav:"topicArn" json:"topicArn"`
	MessageId      string    `dynamodbav:"messageId" json:"messageId"`
	CreateTime     time.Time `dynamodbav:"createTime" json:"createTime"`
}

type PressInputDTO struct {
	Event     ClickEvent
	TopicArn  string
	MessageId string
}

type PressRepository interface {
	Create(ctx context.Context, input PressInputDTO) (PressDTO, error)
	List(ctx context.Context, serialNumber string, params QueryParams) (QueryResults[PressDTO], error)
}

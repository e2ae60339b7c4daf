package data

type ClickType string

const (
	ClickSingle ClickType = "SINGLE"
	ClickDouble ClickType = "DOUBLE"
	ClickLong   ClickType = "LONG"
)

// ClickEvent is the payload the IoT button rule sends to the function.
// Unknown click types decode as-is.
type ClickEvent struct {
	SerialNumber   string    `json:"serialNumber"`
	BatteryVoltage string    `json:"batteryVoltage"`
	ClickType      ClickType `json:"clickType"`
}

type NotificationMessage struct {
	Subject string
	Body    string
}

type PressResult struct {
	TopicArn        string `json:"topicArn"`
	SubscriptionArn string `json:"subscriptionArn"`
	MessageId       string `json:"messageId"`
	Subscribed      bool   `json:"subscribed"`
}

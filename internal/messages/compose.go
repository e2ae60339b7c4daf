package messages

import (
	"fmt"
	"time"

	"philcali.me/button/internal/data"
)

const Subject = "B6 Button pressed!"

const Fallback = `¯\_(ツ)_/¯`

const TimestampLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

const bodyTemplate = `
Naiya had her B6!
Button was pressed by %s at %s.

---
Serial number:%s -- processed by Lambda
Click type: %s
Battery voltage: %s

`

func DisplayName(clickType data.ClickType) string {
	switch clickType {
	case data.ClickSingle:
		return "Rita"
	case data.ClickDouble:
		return "Mike"
	default:
		return Fallback
	}
}

// Compose is deterministic for a fixed now.
func Compose(event data.ClickEvent, now time.Time) data.NotificationMessage {
	return data.NotificationMessage{
		Subject: Subject,
		Body: fmt.Sprintf(bodyTemplate,
			DisplayName(event.ClickType),
			now.Format(TimestampLayout),
			event.SerialNumber,
			event.ClickType,
			event.BatteryVoltage,
		),
	}
}

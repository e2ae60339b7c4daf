package messages

import (
	"strings"
	"testing"
	"time"

	"philcali.me/button/internal/data"
)

func TestCompose(t *testing.T) {
	now := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)

	tests := map[string]struct {
		clickType data.ClickType
		name      string
	}{
		"SINGLE":       {clickType: data.ClickSingle, name: "Rita"},
		"DOUBLE":       {clickType: data.ClickDouble, name: "Mike"},
		"LONG":         {clickType: data.ClickLong, name: Fallback},
		"Unrecognized": {clickType: data.ClickType("TRIPLE"), name: Fallback},
		"Empty":        {clickType: data.ClickType(""), name: Fallback},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			message := Compose(data.ClickEvent{
				SerialNumber:   "G030JF053956LERW",
				BatteryVoltage: "1441mV",
				ClickType:      test.clickType,
			}, now)
			if message.Subject != Subject {
				t.Errorf("Expected subject %s, but got %s", Subject, message.Subject)
			}
			expected := "Button was pressed by " + test.name + " at "
			if !strings.Contains(message.Body, expected) {
				t.Errorf("Expected body to contain %q, but got %s", expected, message.Body)
			}
		})
	}

	t.Run("Body", func(t *testing.T) {
		message := Compose(data.ClickEvent{
			SerialNumber:   "G030JF053956LERW",
			BatteryVoltage: "1441mV",
			ClickType:      data.ClickDouble,
		}, now)
		expected := "\nNaiya had her B6!\n" +
			"Button was pressed by Mike at Sat Oct 17 2026 09:30:00 GMT+0000 (UTC).\n" +
			"\n---\n" +
			"Serial number:G030JF053956LERW -- processed by Lambda\n" +
			"Click type: DOUBLE\n" +
			"Battery voltage: 1441mV\n\n"
		if message.Body != expected {
			t.Fatalf("Expected body:\n%q\nbut got:\n%q", expected, message.Body)
		}
	})

	t.Run("LocalZone", func(t *testing.T) {
		pacific := time.FixedZone("PDT", -7*60*60)
		message := Compose(data.ClickEvent{ClickType: data.ClickSingle}, now.In(pacific))
		expected := "Button was pressed by Rita at Sat Oct 17 2026 02:30:00 GMT-0700 (PDT)."
		if !strings.Contains(message.Body, expected) {
			t.Fatalf("Expected body to contain %q, but got %q", expected, message.Body)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		event := data.ClickEvent{SerialNumber: "abc", ClickType: data.ClickSingle}
		if Compose(event, now) != Compose(event, now) {
			t.Fatalf("Expected identical messages for the same clock reading")
		}
	})
}

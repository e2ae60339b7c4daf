package loggers

import "testing"

func TestNewLogger(t *testing.T) {
	t.Run("DefaultLevel", func(t *testing.T) {
		logger, err := NewLogger("")
		if err != nil {
			t.Fatalf("Unexpected error building logger: %v", err)
		}
		logger.Infof("built %s", "logger")
	})

	t.Run("ParsedLevel", func(t *testing.T) {
		if _, err := NewLogger("warn"); err != nil {
			t.Fatalf("Expected warn to parse, but got %v", err)
		}
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		if _, err := NewLogger("chatty"); err == nil {
			t.Fatalf("Expected an invalid level to fail")
		}
	})
}

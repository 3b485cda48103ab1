package server

import (
	"testing"
	"time"
)

func TestWebLogger_SendsToChannel(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("render-1", messageChan)

	logger.Printf("Pass %d/%d completed\n", 1, 25)

	select {
	case msg := <-messageChan:
		if msg.Message != "Pass 1/25 completed\n" {
			t.Errorf("Expected formatted message, got %q", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level info, got %q", msg.Level)
		}
		if msg.Timestamp.IsZero() {
			t.Error("Expected a timestamp")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_DropsWhenChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-2", messageChan)

	// The first message fills the channel; later ones must be dropped
	// rather than blocking the renderer
	logger.Printf("first\n")
	logger.Printf("second\n")
	logger.Printf("third\n")

	if got := len(messageChan); got != 1 {
		t.Errorf("Expected exactly 1 buffered message, got %d", got)
	}
	if msg := <-messageChan; msg.Message != "first\n" {
		t.Errorf("Expected the first message to survive, got %q", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("render-3", nil)

	// Must not panic without a console channel
	logger.Printf("no console attached\n")
}

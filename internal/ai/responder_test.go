package ai

import (
	"context"
	"testing"
)

func TestCanned_EchoesMessage(t *testing.T) {
	reply, err := Canned{}.Reply(context.Background(), "what did I spend on food?")
	if err != nil {
		t.Fatalf("Canned.Reply: %v", err)
	}
	want := "I received your message: what did I spend on food?. This is a placeholder response from the backend."
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}

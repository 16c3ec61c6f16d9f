package ws

import (
	"testing"
)

func TestParseMessage_Input(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"input","action":"forward","pressed":true}`))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	input, ok := msg.(*InputMessage)
	if !ok {
		t.Fatalf("Expected *InputMessage, got %T", msg)
	}
	if input.Action != "forward" || !input.Pressed {
		t.Errorf("Wrong fields: %+v", input)
	}
}

func TestParseMessage_Look(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"look","yaw":1.5,"pitch":-0.25}`))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	look, ok := msg.(*LookMessage)
	if !ok {
		t.Fatalf("Expected *LookMessage, got %T", msg)
	}
	if look.Yaw != 1.5 || look.Pitch != -0.25 {
		t.Errorf("Wrong fields: %+v", look)
	}
}

func TestParseMessage_Fire(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"fire","kind":"bomb"}`))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	fire, ok := msg.(*FireMessage)
	if !ok {
		t.Fatalf("Expected *FireMessage, got %T", msg)
	}
	if fire.Kind != "bomb" {
		t.Errorf("Wrong kind: %s", fire.Kind)
	}
}

func TestParseMessage_Ping(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type":"ping","client_time":123456}`))
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}

	ping, ok := msg.(*PingMessage)
	if !ok {
		t.Fatalf("Expected *PingMessage, got %T", msg)
	}
	if ping.ClientTime != 123456 {
		t.Errorf("Wrong client_time: %d", ping.ClientTime)
	}
}

func TestParseMessage_UnknownType(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":"teleport"}`)); err == nil {
		t.Error("Expected error for unknown message type")
	}
}

func TestParseMessage_BrokenJSON(t *testing.T) {
	if _, err := ParseMessage([]byte(`{"type":`)); err == nil {
		t.Error("Expected error for broken JSON")
	}
}

package amqp

import (
	"testing"
	"time"
)

func TestPaymentRecordedMessageJSON(t *testing.T) {
	msg := NewPaymentRecordedMessage("p1", 2)
	if msg.Timestamp.IsZero() {
		t.Fatal("Timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := PaymentRecordedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != "p1" || got.Version != 2 {
		t.Errorf("got %+v", got)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestPaymentRecordedMessageFromJSONInvalid(t *testing.T) {
	if _, err := PaymentRecordedMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed body")
	}
}

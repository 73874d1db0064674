package amqp

import (
	"encoding/json"
	"time"
)

// PaymentRecordedMessage is the lightweight notification published when a
// payment is recorded. Only the ID travels on the wire, the worker fetches
// the full record from the database.
type PaymentRecordedMessage struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPaymentRecordedMessage(id string, version int64) *PaymentRecordedMessage {
	return &PaymentRecordedMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *PaymentRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PaymentRecordedMessageFromJSON(data []byte) (*PaymentRecordedMessage, error) {
	var msg PaymentRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

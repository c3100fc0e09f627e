package notifier

import (
	"encoding/json"
	"time"
)

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	Time    time.Time   `json:"time"`
}

func (message *Message) encode() ([]byte, error) {
	return json.Marshal(message)
}

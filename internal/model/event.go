package model

import (
	"encoding/json"
	"time"
)

// GateEvent is a persisted audit record, mirroring what is published to NATS.
type GateEvent struct {
	ID        int64           `json:"id"`
	Topic     string          `json:"topic"`
	GroupID   int64           `json:"group_id"`
	MemberID  int64           `json:"member_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

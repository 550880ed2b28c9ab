package postgres

import (
	"encoding/json"

	"github.com/groblegark/gatewarden/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a model.GateRecord.
// The row must contain columns in the order defined by recordColumns.
func scanRecord(row scannable) (*model.GateRecord, error) {
	var r model.GateRecord
	var phase string

	err := row.Scan(
		&r.ID,
		&r.GroupID,
		&r.MemberID,
		&phase,
		&r.QuestionID,
		&r.AttemptsRemaining,
		&r.Deadline,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Phase = model.Phase(phase)
	return &r, nil
}

// scanEvent scans a single row into a model.GateEvent.
func scanEvent(row scannable) (*model.GateEvent, error) {
	var ev model.GateEvent
	var payload []byte

	err := row.Scan(
		&ev.ID,
		&ev.Topic,
		&ev.GroupID,
		&ev.MemberID,
		&payload,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ev.Payload = json.RawMessage(payload)
	return &ev, nil
}

// payloadBytes normalizes an event payload for the jsonb column:
// empty payloads become the empty JSON object.
func payloadBytes(p json.RawMessage) []byte {
	if len(p) == 0 {
		return []byte(`{}`)
	}
	return []byte(p)
}

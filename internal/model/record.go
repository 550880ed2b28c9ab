package model

import (
	"fmt"
	"time"
)

// Phase represents the current stage of a member's gate lifecycle.
type Phase string

const (
	// PhasePending means the record was just created and the chat
	// restriction is being applied.
	PhasePending Phase = "pending"
	// PhaseAnswering means the restriction is applied, the question has
	// been delivered, and the gate is waiting for a response.
	PhaseAnswering Phase = "answering"
	// PhaseResolved is terminal: success, failure, or timeout has already
	// been actioned. Resolved records never persist; they are deleted in
	// the same transition that resolves them.
	PhaseResolved Phase = "resolved"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// IsValid checks whether the phase is a known value.
func (p Phase) IsValid() bool {
	switch p {
	case PhasePending, PhaseAnswering, PhaseResolved:
		return true
	}
	return false
}

// Key identifies a gated member within a group. At most one active
// GateRecord exists per key at any time.
type Key struct {
	GroupID  int64 `json:"group_id"`
	MemberID int64 `json:"member_id"`
}

// String formats the key for logs and API paths.
func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.GroupID, k.MemberID)
}

// GateRecord tracks one member's passage through the admission gate.
// Created on join, mutated only by the gate engine, deleted on any
// terminal transition.
type GateRecord struct {
	ID                string    `json:"id"`
	GroupID           int64     `json:"group_id"`
	MemberID          int64     `json:"member_id"`
	Phase             Phase     `json:"phase"`
	QuestionID        string    `json:"question_id"`
	AttemptsRemaining int       `json:"attempts_remaining"`
	Deadline          time.Time `json:"deadline"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Key returns the (group, member) key for the record.
func (r *GateRecord) Key() Key {
	return Key{GroupID: r.GroupID, MemberID: r.MemberID}
}

// Expired reports whether the record's deadline has passed at the given instant.
func (r *GateRecord) Expired(now time.Time) bool {
	return !now.Before(r.Deadline)
}

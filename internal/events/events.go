package events

import (
	"context"

	"github.com/groblegark/gatewarden/internal/model"
)

// Event topic constants
const (
	TopicMemberGated    = "gatewarden.member.gated"
	TopicMemberPrompted = "gatewarden.member.prompted"
	TopicMemberRetried  = "gatewarden.member.retried"
	TopicMemberPassed   = "gatewarden.member.passed"
	TopicMemberRemoved  = "gatewarden.member.removed"
	TopicBankReloaded   = "gatewarden.bank.reloaded"
)

// Event types

// MemberGated is published when a join event creates a gate record and
// the member's chat permissions are revoked.
type MemberGated struct {
	Record *model.GateRecord `json:"record"`
}

// MemberPrompted is published when the assigned question is delivered.
type MemberPrompted struct {
	Key        model.Key `json:"key"`
	QuestionID string    `json:"question_id"`
}

// MemberRetried is published after a wrong answer that leaves attempts
// remaining.
type MemberRetried struct {
	Key               model.Key `json:"key"`
	QuestionID        string    `json:"question_id"`
	AttemptsRemaining int       `json:"attempts_remaining"`
}

// MemberPassed is published when a correct answer restores privileges.
type MemberPassed struct {
	Key        model.Key `json:"key"`
	QuestionID string    `json:"question_id"`
}

// MemberRemoved is published when a member is removed from the group.
// Reason is one of "timeout", "attempts_exhausted", "unknown_question",
// or "admin".
type MemberRemoved struct {
	Key    model.Key `json:"key"`
	Reason string    `json:"reason"`
}

// Removal reasons carried by MemberRemoved.
const (
	ReasonTimeout           = "timeout"
	ReasonAttemptsExhausted = "attempts_exhausted"
	ReasonUnknownQuestion   = "unknown_question"
	ReasonAdmin             = "admin"
)

// BankReloaded is published after a successful question bank reload.
type BankReloaded struct {
	Questions int `json:"questions"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

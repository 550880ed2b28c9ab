// Package transport defines the boundary between the gate engine and the
// chat platform. The engine only ever talks to the Transport interface;
// platform adapters (Telegram, tests, HTTP-driven simulators) implement it.
package transport

import "context"

// Transport performs privilege changes and message delivery on the chat
// platform. All calls may block on the network; the engine invokes them
// inside a per-member critical section, so implementations must not call
// back into the engine.
type Transport interface {
	// RestrictMember revokes the member's permission to send messages.
	RestrictMember(ctx context.Context, groupID, memberID int64) error

	// UnrestrictMember restores the member's full chat permissions.
	UnrestrictMember(ctx context.Context, groupID, memberID int64) error

	// RemoveMember removes the member from the group. Implementations
	// should allow the member to re-join later (kick, not permanent ban).
	RemoveMember(ctx context.Context, groupID, memberID int64) error

	// SendPrompt delivers the challenge question to the member in the group.
	SendPrompt(ctx context.Context, groupID, memberID int64, questionText string) error
}

// Noop is a Transport that does nothing. Used for dry runs and as a test
// double base.
type Noop struct{}

func (Noop) RestrictMember(ctx context.Context, groupID, memberID int64) error   { return nil }
func (Noop) UnrestrictMember(ctx context.Context, groupID, memberID int64) error { return nil }
func (Noop) RemoveMember(ctx context.Context, groupID, memberID int64) error     { return nil }
func (Noop) SendPrompt(ctx context.Context, groupID, memberID int64, questionText string) error {
	return nil
}

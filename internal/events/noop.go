package events

import "context"

// NoopPublisher swallows events. Used when GATEWARDEN_NATS_URL is unset;
// the store's audit trail still records every transition.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }

package events

// Subscriber is the consuming side of the gate event bus. Implemented by
// NATSSubscriber; the publishing half lives on Publisher so the engine
// never holds a subscription.
type Subscriber interface {
	// Subscribe delivers raw event payloads for a topic (wildcards
	// allowed) until the returned cancel function is called.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}

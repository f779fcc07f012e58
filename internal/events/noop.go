package events

// NoopBus is used when no event bus is configured. The service must still
// start and serve without NATS, so publishes quietly succeed.
type NoopBus struct{}

var _ Bus = NoopBus{}

func (NoopBus) Publish(subject string, data []byte, msgId string) error { return nil }

func (NoopBus) Drain() error { return nil }

package events

// Publisher receives task lifecycle events (task.created, task.deleted).
// Swap in a real broker client when downstream consumers show up.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

type Noop struct{}

func (Noop) Publish(topic string, payload []byte) error { return nil }

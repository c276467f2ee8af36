package domain

type Message struct {
	Key   []byte
	Value []byte
}

// EventPublisher is the message-queue port. The kafka implementation is
// wired only when brokers are configured; otherwise a no-op stands in.
type EventPublisher interface {
	Publish(topic string, msgs ...Message) error
}

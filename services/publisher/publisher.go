package publisher

// Publisher represents a service for publishing capture batches
type Publisher interface {
	// Publish publishes a message under the given field key
	Publish(key string, message []byte) error

	// TrimStream trims the stream to the configured maximum length
	TrimStream() error

	// Close closes the publisher connection
	Close() error
}

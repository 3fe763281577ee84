package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// ConsumerGroup is only used by consumers.
	ConsumerGroup string
}

package outbox

import (
	"time"
)

// OutboxMessage represents an order event staged in the same transaction as
// the change it describes, awaiting delivery to RabbitMQ.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

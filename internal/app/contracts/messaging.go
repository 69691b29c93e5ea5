package contracts

import "context"

type MessagePublisher interface {
	Publish(ctx context.Context, queue, messageType string, headers map[string]interface{}, payload interface{}) error
}

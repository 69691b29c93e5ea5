package messaging

import (
	"context"
	"fmt"
	"sync"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	Channel  *amqp.Channel
	Confirms chan amqp.Confirmation
	Log      *zap.Logger
	mu       sync.Mutex
}

// NewRabbitMQPublisher opens a confirm-mode channel and declares the given queues as durable.
func NewRabbitMQPublisher(conn *amqp.Connection, logger *zap.Logger, queues ...string) (contracts.MessagePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	for _, queue := range queues {
		if err := DeclareQueue(ch, queue); err != nil {
			return nil, err
		}
	}
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &rabbitMQPublisher{
		Channel:  ch,
		Confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		Log:      logger,
	}, nil
}

// Publish sends a persistent JSON message and waits for the broker confirm.
func (p *rabbitMQPublisher) Publish(ctx context.Context, queue, messageType string, headers map[string]interface{}, payload interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	table := amqp.Table{constvars.MessageHeaderType: messageType}
	for key, value := range headers {
		table[key] = value
	}
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp.Persistent,
		Type:         messageType,
		Headers:      table,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.Channel.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err, queue)
	}

	select {
	case confirmed := <-p.Confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublish(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublish(ctx.Err(), queue)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, queue),
	)
	return nil
}

func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	return err
}

// NewConsumer declares queue and starts a manual-ack consumer limited to prefetch unacked deliveries.
func NewConsumer(conn *amqp.Connection, queue, consumerName string, prefetch int) (*amqp.Channel, <-chan amqp.Delivery, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	if err := DeclareQueue(ch, queue); err != nil {
		return nil, nil, exceptions.ErrRabbitMQConsume(err, queue)
	}
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, nil, exceptions.ErrRabbitMQConsume(err, queue)
	}

	deliveries, err := ch.Consume(queue, consumerName, false, false, false, false, nil)
	if err != nil {
		return nil, nil, exceptions.ErrRabbitMQConsume(err, queue)
	}
	return ch, deliveries, nil
}

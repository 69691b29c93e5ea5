package rematch

import (
	"context"
	"errors"
	"tawjih-service/internal/app/contracts"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const defaultProcessTimeout = 10 * time.Second

// Worker consumes progress snapshots. Malformed or unprocessable messages are rejected without
// requeue; retryable failures go back to the queue.
type Worker struct {
	Usecase contracts.RematchUsecase
	Queue   string
	Timeout time.Duration
	Log     *zap.Logger
}

func NewWorker(usecase contracts.RematchUsecase, queue string, timeout time.Duration, logger *zap.Logger) *Worker {
	if timeout <= 0 {
		timeout = defaultProcessTimeout
	}
	return &Worker{
		Usecase: usecase,
		Queue:   queue,
		Timeout: timeout,
		Log:     logger,
	}
}

// Run handles deliveries one at a time until ctx is done or the channel closes.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.Log.Info("Worker.Run started", zap.String(constvars.LoggingQueueKey, w.Queue))
	for {
		select {
		case <-ctx.Done():
			w.Log.Info("Worker.Run stopped", zap.String(constvars.LoggingQueueKey, w.Queue))
			return
		case delivery, ok := <-deliveries:
			if !ok {
				w.Log.Warn("Worker.Run delivery channel closed", zap.String(constvars.LoggingQueueKey, w.Queue))
				return
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *Worker) handle(ctx context.Context, delivery amqp.Delivery) {
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	var message requests.ProgressSnapshotMessage
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		w.reject(requestID, delivery, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(message); err != nil {
		w.reject(requestID, delivery, exceptions.ErrInputValidation(err))
		return
	}
	if message.SnapshotID == "" {
		w.reject(requestID, delivery, exceptions.ErrInputValidation(errors.New("snapshot_id is required")))
		return
	}

	processCtx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	_, err := w.Usecase.ProcessSnapshot(processCtx, message.ToSnapshot())
	if err != nil {
		if exceptions.IsRetryable(err) || errors.Is(err, context.DeadlineExceeded) {
			w.Log.Warn("Worker.handle requeueing snapshot",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSnapshotIDKey, message.SnapshotID),
				zap.Error(err),
			)
			if nackErr := delivery.Nack(false, true); nackErr != nil {
				w.Log.Error("Worker.handle error nacking", zap.String(constvars.LoggingRequestIDKey, requestID), zap.Error(nackErr))
			}
			return
		}
		w.reject(requestID, delivery, err)
		return
	}

	if err := delivery.Ack(false); err != nil {
		w.Log.Error("Worker.handle error acking", zap.String(constvars.LoggingRequestIDKey, requestID), zap.Error(err))
	}
}

func (w *Worker) reject(requestID string, delivery amqp.Delivery, cause error) {
	w.Log.Error("Worker.handle rejecting snapshot",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, w.Queue),
		zap.Error(cause),
	)
	if err := delivery.Reject(false); err != nil {
		w.Log.Error("Worker.handle error rejecting", zap.String(constvars.LoggingRequestIDKey, requestID), zap.Error(err))
	}
}

package rematch

import (
	"context"
	"errors"
	"tawjih-service/internal/app/models"
	"tawjih-service/internal/pkg/dto/requests"
	"tawjih-service/internal/pkg/exceptions"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type recordingAcknowledger struct {
	acked    int
	nacked   int
	rejected int
	requeue  bool
}

func (a *recordingAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked++
	return nil
}

func (a *recordingAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(tag uint64, requeue bool) error {
	a.rejected++
	a.requeue = requeue
	return nil
}

type mockRematchUsecase struct {
	mock.Mock
}

func (m *mockRematchUsecase) EvaluateRematch(ctx context.Context, request *requests.EvaluateRematch) (*models.RematchDecision, error) {
	args := m.Called(ctx, request)
	decision, _ := args.Get(0).(*models.RematchDecision)
	return decision, args.Error(1)
}

func (m *mockRematchUsecase) ProcessSnapshot(ctx context.Context, snapshot models.ProgressSnapshot) (*models.RematchDecision, error) {
	args := m.Called(ctx, snapshot)
	decision, _ := args.Get(0).(*models.RematchDecision)
	return decision, args.Error(1)
}

func (m *mockRematchUsecase) FindDecision(ctx context.Context, snapshotID string) (*models.RematchDecision, error) {
	args := m.Called(ctx, snapshotID)
	decision, _ := args.Get(0).(*models.RematchDecision)
	return decision, args.Error(1)
}

func delivery(body string) (amqp.Delivery, *recordingAcknowledger) {
	acknowledger := &recordingAcknowledger{}
	return amqp.Delivery{Acknowledger: acknowledger, DeliveryTag: 1, Body: []byte(body)}, acknowledger
}

const validSnapshot = `{"snapshot_id":"snap-1","candidate_id":"dr_claire","weeks_elapsed":5,"improvement_rate":8,"engagement_level":7,"satisfaction_score":8}`

func TestWorkerHandle(t *testing.T) {
	t.Run("Processed Snapshot Is Acked", func(t *testing.T) {
		usecase := new(mockRematchUsecase)
		usecase.On("ProcessSnapshot", mock.Anything, mock.MatchedBy(func(s models.ProgressSnapshot) bool {
			return s.SnapshotID == "snap-1" && s.CandidateID == "dr_claire" && s.WeeksElapsed == 5
		})).Return(&models.RematchDecision{}, nil).Once()

		d, acknowledger := delivery(validSnapshot)
		NewWorker(usecase, "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.acked)
		usecase.AssertExpectations(t)
	})

	t.Run("Malformed JSON Is Rejected Without Requeue", func(t *testing.T) {
		usecase := new(mockRematchUsecase)
		d, acknowledger := delivery(`{"snapshot_id":`)
		NewWorker(usecase, "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.rejected)
		assert.False(t, acknowledger.requeue)
		usecase.AssertNotCalled(t, "ProcessSnapshot", mock.Anything, mock.Anything)
	})

	t.Run("Missing Snapshot Id Is Rejected", func(t *testing.T) {
		d, acknowledger := delivery(`{"candidate_id":"dr_claire","weeks_elapsed":5}`)
		NewWorker(new(mockRematchUsecase), "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.rejected)
	})

	t.Run("Out Of Range Engagement Is Rejected", func(t *testing.T) {
		d, acknowledger := delivery(`{"snapshot_id":"s","candidate_id":"dr_claire","engagement_level":42}`)
		NewWorker(new(mockRematchUsecase), "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.rejected)
	})

	t.Run("Transient Failure Is Requeued", func(t *testing.T) {
		usecase := new(mockRematchUsecase)
		usecase.On("ProcessSnapshot", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrMongoDBUpdateDocument(errors.New("timeout"), "rematch_decisions")).Once()

		d, acknowledger := delivery(validSnapshot)
		NewWorker(usecase, "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.nacked)
		assert.True(t, acknowledger.requeue)
	})

	t.Run("Unknown Candidate Is Rejected", func(t *testing.T) {
		usecase := new(mockRematchUsecase)
		usecase.On("ProcessSnapshot", mock.Anything, mock.Anything).
			Return(nil, exceptions.ErrCandidateNotFound(nil, "dr_claire")).Once()

		d, acknowledger := delivery(validSnapshot)
		NewWorker(usecase, "progress", time.Second, zap.NewNop()).handle(context.Background(), d)
		assert.Equal(t, 1, acknowledger.rejected)
		assert.False(t, acknowledger.requeue)
	})
}

func TestWorkerRun(t *testing.T) {
	t.Run("Stops When The Channel Closes", func(t *testing.T) {
		usecase := new(mockRematchUsecase)
		usecase.On("ProcessSnapshot", mock.Anything, mock.Anything).Return(&models.RematchDecision{}, nil).Twice()

		deliveries := make(chan amqp.Delivery, 2)
		first, firstAck := delivery(validSnapshot)
		second, secondAck := delivery(validSnapshot)
		deliveries <- first
		deliveries <- second
		close(deliveries)

		NewWorker(usecase, "progress", time.Second, zap.NewNop()).Run(context.Background(), deliveries)
		assert.Equal(t, 1, firstAck.acked)
		assert.Equal(t, 1, secondAck.acked)
	})

	t.Run("Stops When The Context Is Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		done := make(chan struct{})
		go func() {
			NewWorker(new(mockRematchUsecase), "progress", time.Second, zap.NewNop()).Run(ctx, make(chan amqp.Delivery))
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
	})
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"funil.app/crm/common/llm"
	"funil.app/crm/common/logger"
	"funil.app/crm/internal/queue"
	"funil.app/crm/internal/service"
)

const (
	errorBackoff = time.Second
	// maxErrorLen bounds the last_error field carried on the stream.
	maxErrorLen = 500
)

type Config struct {
	MaxAttempts int
	// TaskTimeout bounds a single generation, retries included.
	TaskTimeout time.Duration
}

type Worker struct {
	consumer  Consumer
	generator MessageGenerator
	cfg       Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, generator MessageGenerator, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Worker{
		consumer:  consumer,
		generator: generator,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "funil.worker"})
	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-time.After(errorBackoff):
				case <-ctx.Done():
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}
	return nil
}

// Handle processes msg and settles it: ack on success or on a task that no
// longer applies, requeue on transient failure, dead-letter once attempts run
// out. The reclaimer uses it for stale deliveries too.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) error {
	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.generate_messages")
	defer sc.End()
	ctx = sc.Context()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:   logger.Ptr(msg.ID),
		TaskType:    logger.Ptr(string(msg.TaskType)),
		WorkspaceID: &msg.WorkspaceID,
		LeadID:      &msg.LeadID,
		CampaignID:  &msg.CampaignID,
	})

	if err := w.processMessageSafe(ctx, msg); err != nil {
		sc.RecordError(err)
		if ctx.Err() != nil {
			// shutting down; the message stays pending for the reclaimer
			slog.WarnContext(ctx, "message processing interrupted", "error", err)
			return err
		}
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"attempt", msg.Attempt)
		w.handleFailedMessage(ctx, msg, err)
		return err
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// the reclaimer will redeliver; regenerating overwrites the same batch
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}
	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing", "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage runs the task without settling the message. Tasks that no
// longer apply return nil.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	if msg.TaskType != queue.TaskTypeGenerateMessages {
		return fmt.Errorf("%w: %q", errUnknownTask, msg.TaskType)
	}

	slog.InfoContext(ctx, "processing message", "attempt", msg.Attempt)

	if w.cfg.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.TaskTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := w.generator.GenerateAutoMessagesForLead(ctx, msg.LeadID, msg.CampaignID, msg.SenderID)
	switch {
	case errors.Is(err, service.ErrTriggerMismatch), errors.Is(err, service.ErrNotFound):
		slog.InfoContext(ctx, "generation task no longer applies, skipping", "reason", err.Error())
		return nil
	case err != nil:
		return err
	}

	slog.InfoContext(ctx, "auto messages generated",
		"suggestions", len(res.Batch.Suggestions),
		"failed_channels", len(res.Failures),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

var errUnknownTask = errors.New("unknown task type")

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts || isPermanent(ctx, err) {
		slog.ErrorContext(ctx, "giving up on message, sending to DLQ",
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, logger.Truncate(err.Error(), maxErrorLen)); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message", "attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, logger.Truncate(err.Error(), maxErrorLen)); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}

// isPermanent reports failures a redelivery cannot fix. A task timeout is
// not one of them: the provider may simply have been slow.
func isPermanent(ctx context.Context, err error) bool {
	if errors.Is(err, errUnknownTask) || errors.Is(err, service.ErrInvalidInput) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !llm.IsRetryable(ctx, err)
}

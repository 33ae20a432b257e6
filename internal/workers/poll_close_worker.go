package workers

import (
	"context"
	"fmt"

	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/logger"
)

// PollCloseWorker closes polls whose end time has passed so late
// votes are rejected even if no request touched the poll.
type PollCloseWorker struct {
	polls domain.PollService
	log   logger.Logger
}

func NewPollCloseWorker(polls domain.PollService, log logger.Logger) Worker {
	return &PollCloseWorker{
		polls: polls,
		log:   log,
	}
}

func (w *PollCloseWorker) Name() string {
	return "poll_close"
}

func (w *PollCloseWorker) Run(ctx context.Context) error {
	closed, err := w.polls.CloseExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to close expired polls: %w", err)
	}

	if len(closed) > 0 {
		w.log.Info("worker: closed expired polls", "count", len(closed))
	}

	return nil
}

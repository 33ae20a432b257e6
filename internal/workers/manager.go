package workers

import (
	"context"
	"time"

	"github.com/favour-22/alx-polly/internal/domain"
	"github.com/favour-22/alx-polly/internal/logger"
)

type Manager struct {
	scheduler *Scheduler
	log       logger.Logger

	polls domain.PollService
}

func NewManager(scheduler *Scheduler, log logger.Logger, polls domain.PollService) *Manager {
	return &Manager{
		scheduler: scheduler,
		log:       log,
		polls:     polls,
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.log.Info("worker: manager started")

	m.scheduler.RunByDuration(ctx, time.Minute, NewPollCloseWorker(m.polls, m.log))
}

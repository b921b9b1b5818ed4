package scheduler

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyJobName = errors.New("job name is required")
	ErrZeroInterval = errors.New("job interval must be positive")
)

// Service wraps a gocron scheduler untuk background housekeeping jobs.
type Service struct {
	scheduler gocron.Scheduler
	log       *zap.Logger
	stopOnce  sync.Once
	stopErr   error
}

func New(log *zap.Logger) (*Service, error) {
	jobLog := log.With(zap.String("component", "scheduler"))

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					jobLog.Error("Scheduler job panicked",
						zap.String("job_id", jobID.String()),
						zap.String("job_name", jobName),
						zap.Any("panic", recoverData))
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &Service{scheduler: sched, log: jobLog}, nil
}

// AddIntervalJob registers a job that runs every interval.
func (s *Service) AddIntervalJob(name string, interval time.Duration, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if interval <= 0 {
		return nil, ErrZeroInterval
	}

	jobLog := s.log.With(zap.String("job_name", name), zap.Duration("interval", interval))

	wrappedTask := func() {
		jobLog.Debug("Scheduler job started")
		task()
		jobLog.Debug("Scheduler job completed")
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(wrappedTask),
		gocron.WithName(name),
	)
	if err != nil {
		jobLog.Error("Failed to register scheduler job", zap.Error(err))
		return nil, err
	}

	jobLog.Info("Scheduler job registered")
	return job, nil
}

// Start begins running scheduled jobs.
func (s *Service) Start() {
	s.log.Info("Scheduler starting")
	s.scheduler.Start()
}

// Stop shuts down the scheduler and prevents new jobs from running.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.log.Info("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}

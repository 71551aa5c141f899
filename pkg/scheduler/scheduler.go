package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler drives recurring jobs on fixed intervals. There is no catch-up:
// a missed interval is simply not retried.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Entry
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  logrus.WithField("component", "scheduler"),
	}
}

// AddEvery schedules job to run once per interval.
func (s *Scheduler) AddEvery(interval time.Duration, name string, job func()) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.log.WithFields(logrus.Fields{
		"job":      name,
		"interval": interval.String(),
	}).Info("job scheduled")
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; a running job finishes its current invocation.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/surfaumaroc/surfcast/internal/surf"
)

// Scheduler periodically refreshes conditions for every registered spot so
// the HTTP API serves warm snapshots.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *surf.Service
	interval  time.Duration
}

func New(service *surf.Service, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. The first run happens immediately so snapshots exist at startup.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(func() {
		log.Println("scheduler: refreshing surf conditions")

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		s.service.RefreshAll(ctx)
		log.Println("scheduler: refresh complete")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

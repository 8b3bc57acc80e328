package jobs

import (
	"context"
	"fmt"
	"time"

	"art-contest/internal/logger"
	"art-contest/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ResultsJob processes contests whose end date has passed
type ResultsJob struct {
	cron           *cron.Cron
	resultsService *services.ResultsService
	schedule       string
	timeout        time.Duration
}

// NewResultsJob creates a results job for a standard five-field cron schedule
func NewResultsJob(resultsService *services.ResultsService, schedule string) *ResultsJob {
	return &ResultsJob{
		cron:           cron.New(),
		resultsService: resultsService,
		schedule:       schedule,
		timeout:        5 * time.Minute,
	}
}

// Start registers the schedule and starts the scheduler in the background
func (j *ResultsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("invalid results schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	logger.Infof("[ResultsJob] Started (schedule: %s)", j.schedule)
	return nil
}

// Stop waits for a running pass to finish
func (j *ResultsJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	logger.Info("[ResultsJob] Stopped")
}

func (j *ResultsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		logger.Errorf("[ResultsJob] Pass failed: %v", err)
	}
}

// RunOnce processes every due contest once
func (j *ResultsJob) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	processed, err := j.resultsService.ProcessDueContests(ctx)
	if processed > 0 {
		logger.WithFields(logrus.Fields{
			"processed": processed,
			"duration":  time.Since(start).String(),
		}).Info("[ResultsJob] Contests completed")
	}
	return processed, err
}

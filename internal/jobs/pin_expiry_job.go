package jobs

import (
	"context"
	"time"

	"art-contest/internal/logger"
	"art-contest/internal/services"
)

// PinExpiryJob unpins submissions once their paid pin has lapsed
type PinExpiryJob struct {
	submissionService *services.SubmissionService
	interval          time.Duration
	stopChan          chan struct{}
}

func NewPinExpiryJob(submissionService *services.SubmissionService, interval time.Duration) *PinExpiryJob {
	return &PinExpiryJob{
		submissionService: submissionService,
		interval:          interval,
		stopChan:          make(chan struct{}),
	}
}

// Start runs the expiry loop until Stop is called
func (j *PinExpiryJob) Start() {
	logger.Infof("[PinExpiryJob] Starting (interval: %v)", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.expire()
		case <-j.stopChan:
			logger.Info("[PinExpiryJob] Stopping")
			return
		}
	}
}

func (j *PinExpiryJob) Stop() {
	close(j.stopChan)
}

func (j *PinExpiryJob) expire() {
	n, err := j.submissionService.ExpirePins(context.Background(), time.Now())
	if err != nil {
		logger.Errorf("[PinExpiryJob] %v", err)
		return
	}
	if n > 0 {
		logger.Infof("[PinExpiryJob] Unpinned %d submissions", n)
	}
}

package workers

import (
	"context"
	"fmt"
	"time"

	"vibenet_backend/internal/logger"
	"vibenet_backend/internal/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const otpCleanupWorkerName = "otp_cleanup"

// OTPCleanupWorker deletes consumed codes past the retention window.
// Unused codes are never touched here.
type OTPCleanupWorker struct {
	db        *gorm.DB
	otpRepo   repositories.OTPRepository
	retention time.Duration
	spec      string
	now       func() time.Time

	cron *cron.Cron
}

func NewOTPCleanupWorker(db *gorm.DB, otpRepo repositories.OTPRepository, spec string, retention time.Duration) *OTPCleanupWorker {
	return &OTPCleanupWorker{
		db:        db,
		otpRepo:   otpRepo,
		retention: retention,
		spec:      spec,
		now:       time.Now,
	}
}

// Start schedules the job. It stops when ctx is cancelled or Stop is called.
func (w *OTPCleanupWorker) Start(ctx context.Context) error {
	w.cron = cron.New(cron.WithLocation(time.UTC))

	if _, err := w.cron.AddFunc(w.spec, func() {
		if _, err := w.RunOnce(ctx); err != nil {
			logger.WorkerLog(otpCleanupWorkerName, "purge", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", otpCleanupWorkerName, err)
	}

	w.cron.Start()
	logger.Info("Worker scheduled", "worker", otpCleanupWorkerName, "spec", w.spec, "retention", w.retention.String())

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// Stop waits for a running job to finish.
func (w *OTPCleanupWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}

// RunOnce purges consumed codes created before now - retention.
func (w *OTPCleanupWorker) RunOnce(ctx context.Context) (int64, error) {
	cutoff := w.now().UTC().Add(-w.retention)

	n, err := w.otpRepo.PurgeConsumed(w.db.WithContext(ctx), cutoff)
	if err != nil {
		return 0, err
	}
	logger.WorkerLog(otpCleanupWorkerName, "purge", nil, "deleted", n)
	return n, nil
}

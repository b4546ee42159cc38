package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/gtask-api/internal/platform/logger"
)

// GuestCleaner deactivates guest accounts older than its TTL as of now.
type GuestCleaner interface {
	CleanupExpiredGuests(ctx context.Context, now time.Time) (int64, error)
}

// GuestCleanupJob sweeps expired guest accounts.
type GuestCleanupJob struct {
	cleaner GuestCleaner
	now     func() time.Time
}

var _ Job = (*GuestCleanupJob)(nil)

// NewGuestCleanupJob creates the sweep job.
func NewGuestCleanupJob(cleaner GuestCleaner) *GuestCleanupJob {
	return &GuestCleanupJob{
		cleaner: cleaner,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Name implements Job.
func (j *GuestCleanupJob) Name() string {
	return "guest_cleanup"
}

// Run implements Job.
func (j *GuestCleanupJob) Run(ctx context.Context) error {
	n, err := j.cleaner.CleanupExpiredGuests(ctx, j.now())
	if err != nil {
		return fmt.Errorf("guest cleanup: %w", err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info("guest accounts expired", slog.Int64("deactivated", n))
	}
	return nil
}

package jobs

import (
	"log"
	"time"

	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// CleanupJob periodically purges expired OTP rows. Rows are kept for a
// retention window after expiry so support can see recent codes, then
// deleted for good.
type CleanupJob struct {
	store     storage.Store
	interval  time.Duration
	retention time.Duration
	stop      chan struct{}
}

// NewCleanupJob creates a new cleanup job scheduler
func NewCleanupJob(store storage.Store, interval time.Duration, retention time.Duration) *CleanupJob {
	return &CleanupJob{
		store:     store,
		interval:  interval,
		retention: retention,
		stop:      make(chan struct{}),
	}
}

// Start begins the sweep loop. One sweep runs immediately so a restart
// never leaves a backlog waiting for the first tick.
func (j *CleanupJob) Start() {
	log.Printf("Starting OTP cleanup job (every %v, retaining %v after expiry)", j.interval, j.retention)
	go j.run()
}

// Stop halts the sweep loop
func (j *CleanupJob) Stop() {
	close(j.stop)
	log.Println("Stopping OTP cleanup job...")
}

func (j *CleanupJob) run() {
	j.sweep()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *CleanupJob) sweep() {
	cutoff := time.Now().Add(-j.retention)
	deleted, err := j.store.DeleteExpiredOTPs(cutoff)
	if err != nil {
		log.Printf("❌ OTP cleanup sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 OTP cleanup removed %d expired codes", deleted)
	}
}

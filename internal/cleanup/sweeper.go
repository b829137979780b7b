// Package cleanup runs the background purge of share-link records: finalized
// links whose expiry passed the retention window, and provisional rows left
// behind by creations that were aborted before finalization.
//
// The sweep is a garbage-collection policy, not a correctness mechanism —
// every read path recomputes expiration from the stored timestamp and never
// trusts record existence.
package cleanup

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"mediashare/internal/config"
	"mediashare/internal/repository"
)

// Sweeper schedules and executes the purge.
type Sweeper struct {
	links repository.ShareLinkRepository
	cfg   config.CleanupConfig
	cron  *cron.Cron
	now   func() time.Time
	enc   *json.Encoder
}

// NewSweeper builds a sweeper from config. Start must be called to schedule it.
func NewSweeper(links repository.ShareLinkRepository, cfg config.CleanupConfig) *Sweeper {
	return &Sweeper{
		links: links,
		cfg:   cfg,
		cron:  cron.New(),
		now:   time.Now,
		enc:   json.NewEncoder(os.Stdout),
	}
}

// Start registers the purge job and starts the scheduler.
func (s *Sweeper) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce executes one sweep. Errors are logged, not returned up a request
// path; the next scheduled run retries naturally.
func (s *Sweeper) RunOnce(ctx context.Context) {
	now := s.now().UTC()

	expiredCutoff := now.AddDate(0, 0, -s.cfg.RetentionDays)
	expired, err := s.links.DeleteExpiredBefore(ctx, expiredCutoff)
	if err != nil {
		s.logSweep("cleanup_expired_failed", 0, err)
	} else if expired > 0 {
		s.logSweep("cleanup_expired", expired, nil)
	}

	provisionalCutoff := now.Add(-time.Duration(s.cfg.ProvisionalMaxAgeSec) * time.Second)
	stale, err := s.links.DeleteStaleProvisional(ctx, provisionalCutoff)
	if err != nil {
		s.logSweep("cleanup_provisional_failed", 0, err)
	} else if stale > 0 {
		s.logSweep("cleanup_provisional", stale, nil)
	}
}

func (s *Sweeper) logSweep(event string, deleted int64, err error) {
	entry := map[string]any{
		"ts":        time.Now().Format(time.RFC3339Nano),
		"component": "cleanup",
		"event":     event,
		"deleted":   deleted,
	}
	if err != nil {
		entry["level"] = "error"
		entry["error"] = err.Error()
	} else {
		entry["level"] = "info"
	}
	if encErr := s.enc.Encode(entry); encErr != nil {
		log.Printf("failed to write cleanup log: %v", encErr)
	}
}

package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mediashare/internal/config"
	repoMocks "mediashare/internal/repository/mocks"
)

func newTestSweeper(links *repoMocks.MockShareLinkRepository, now time.Time) (*Sweeper, *bytes.Buffer) {
	s := NewSweeper(links, config.CleanupConfig{
		Enabled:              true,
		Schedule:             "@every 10m",
		RetentionDays:        30,
		ProvisionalMaxAgeSec: 900,
	})
	s.now = func() time.Time { return now }
	var buf bytes.Buffer
	s.enc = json.NewEncoder(&buf)
	return s, &buf
}

func TestSweeper_RunOnce(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	t.Run("purges with retention and provisional cutoffs", func(t *testing.T) {
		links := new(repoMocks.MockShareLinkRepository)
		s, buf := newTestSweeper(links, now)

		links.On("DeleteExpiredBefore", mock.Anything, now.AddDate(0, 0, -30)).Return(int64(3), nil)
		links.On("DeleteStaleProvisional", mock.Anything, now.Add(-15*time.Minute)).Return(int64(1), nil)

		s.RunOnce(context.Background())

		links.AssertExpectations(t)
		out := buf.String()
		assert.Contains(t, out, `"event":"cleanup_expired"`)
		assert.Contains(t, out, `"event":"cleanup_provisional"`)
	})

	t.Run("nothing to delete logs nothing", func(t *testing.T) {
		links := new(repoMocks.MockShareLinkRepository)
		s, buf := newTestSweeper(links, now)

		links.On("DeleteExpiredBefore", mock.Anything, mock.Anything).Return(int64(0), nil)
		links.On("DeleteStaleProvisional", mock.Anything, mock.Anything).Return(int64(0), nil)

		s.RunOnce(context.Background())

		assert.Empty(t, buf.String())
	})

	t.Run("a failing purge does not stop the other one", func(t *testing.T) {
		links := new(repoMocks.MockShareLinkRepository)
		s, buf := newTestSweeper(links, now)

		links.On("DeleteExpiredBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
		links.On("DeleteStaleProvisional", mock.Anything, mock.Anything).Return(int64(2), nil)

		s.RunOnce(context.Background())

		links.AssertExpectations(t)
		out := buf.String()
		assert.Contains(t, out, `"event":"cleanup_expired_failed"`)
		assert.Contains(t, out, `"error":"db down"`)
		assert.Contains(t, out, `"event":"cleanup_provisional"`)
	})
}

func TestSweeper_StartDisabled(t *testing.T) {
	links := new(repoMocks.MockShareLinkRepository)
	s, _ := newTestSweeper(links, time.Now())
	s.cfg.Enabled = false

	assert.NoError(t, s.Start())
	// No job was scheduled, so no repository call can ever happen.
	links.AssertNotCalled(t, "DeleteExpiredBefore", mock.Anything, mock.Anything)
}

func TestSweeper_StartRejectsBadSchedule(t *testing.T) {
	links := new(repoMocks.MockShareLinkRepository)
	s, _ := newTestSweeper(links, time.Now())
	s.cfg.Schedule = "not-a-schedule"

	assert.Error(t, s.Start())
}

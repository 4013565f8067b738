package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExpirer struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (r *recordingExpirer) ExpireOffers(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, now)
	return int64(len(r.calls)), r.err
}

func TestOfferExpiryScheduler_RunOnceUsesClock(t *testing.T) {
	expirer := &recordingExpirer{}
	s := NewOfferExpiryScheduler(expirer, "@every 1h")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.RunOnce()

	require.Len(t, expirer.calls, 1)
	assert.Equal(t, fixed, expirer.calls[0])
}

func TestOfferExpiryScheduler_RunOnceSurvivesErrors(t *testing.T) {
	expirer := &recordingExpirer{err: errors.New("db down")}
	s := NewOfferExpiryScheduler(expirer, "@every 1h")

	assert.NotPanics(t, s.RunOnce)
	assert.Len(t, expirer.calls, 1)
}

func TestOfferExpiryScheduler_InvalidSpec(t *testing.T) {
	s := NewOfferExpiryScheduler(&recordingExpirer{}, "not a cron spec")

	assert.Error(t, s.Start())
}

func TestOfferExpiryScheduler_StartStop(t *testing.T) {
	s := NewOfferExpiryScheduler(&recordingExpirer{}, "*/10 * * * *")

	require.NoError(t, s.Start())
	s.Stop()
}

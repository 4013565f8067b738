package scheduler

import (
	"time"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OfferExpirer deactivates offers whose end date has passed.
type OfferExpirer interface {
	ExpireOffers(now time.Time) (int64, error)
}

// OfferExpiryScheduler sweeps expired offers on a cron spec.
type OfferExpiryScheduler struct {
	cron   *cron.Cron
	spec   string
	offers OfferExpirer
	now    func() time.Time
}

func NewOfferExpiryScheduler(offers OfferExpirer, spec string) *OfferExpiryScheduler {
	return &OfferExpiryScheduler{
		cron:   cron.New(),
		spec:   spec,
		offers: offers,
		now:    time.Now,
	}
}

// Start registers the sweep and starts the cron loop. An invalid spec is
// reported without starting anything.
func (s *OfferExpiryScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		logger.Error("Failed to add cron job for offer expiry", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Offer expiry scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

// RunOnce performs one sweep.
func (s *OfferExpiryScheduler) RunOnce() {
	expired, err := s.offers.ExpireOffers(s.now())
	if err != nil {
		logger.Error("Failed to expire offers", err)
		return
	}
	if expired > 0 {
		logger.Info("Expired offers deactivated", map[string]interface{}{
			"count": expired,
		})
	}
}

// Stop waits for a running sweep to finish.
func (s *OfferExpiryScheduler) Stop() {
	logger.Info("Stopping offer expiry scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Offer expiry scheduler stopped", nil)
}

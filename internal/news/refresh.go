package news

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultRefreshInterval is how often the watched region is recomputed.
const DefaultRefreshInterval = time.Minute

// Refresher keeps the most recently watched region fresh on a fixed period.
// Watching a new region cancels the previous task before starting the next,
// so a stale timer can never refresh a region the caller has left; the most
// recent explicit selection is authoritative.
type Refresher struct {
	service  *Service
	interval time.Duration

	mu     sync.Mutex
	region string
	cancel context.CancelFunc
}

// NewRefresher creates a refresher over the given service.
func NewRefresher(service *Service, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{service: service, interval: interval}
}

// Watch makes region the active one. A no-op if it already is.
func (r *Refresher) Watch(region string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.region == region && r.cancel != nil {
		return
	}
	if r.cancel != nil {
		r.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.region = region
	r.cancel = cancel
	go r.loop(ctx, region)
}

// Stop cancels any active refresh task.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
		r.region = ""
	}
}

func (r *Refresher) loop(ctx context.Context, region string) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.current() != region {
				return
			}
			if err := r.service.Refresh(ctx, region); err != nil {
				log.Printf("Refresh failed for %s: %v", region, err)
				return
			}
		}
	}
}

func (r *Refresher) current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.region
}
